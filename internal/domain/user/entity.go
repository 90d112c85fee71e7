package user

// User represents a user entity in the system.
type User struct {
	ID    int64  `json:"id"`    // ID is assigned by the store and never reused
	Name  string `json:"name"`  // Name is the display name of the user
	Email string `json:"email"` // Email is the contact address of the user
}
