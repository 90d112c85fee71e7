package grpc

// CreateUserRequest is the payload of UserService/CreateUser.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest is the payload of UserService/UpdateUser. Both fields are replaced.
type UpdateUserRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserIDRequest is the payload of UserService/GetUser and UserService/DeleteUser.
type UserIDRequest struct {
	ID int64 `json:"id"`
}

type ListUsersRequest struct{}

// User is the entity returned by every single-user method.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}
