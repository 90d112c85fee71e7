package user

import domain "user-crud-service/internal/domain/user"

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string `validate:"required,max=255"`
	Email string `validate:"required,email,max=255"`
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Both mutable fields are replaced.
type UpdateUserRequest struct {
	ID    int64
	Name  string `validate:"required,max=255"`
	Email string `validate:"required,email,max=255"`
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// ListUsersRequest represents the request payload for listing users.
// The list is unbounded and unfiltered.
type ListUsersRequest struct{}

// UserResponse is the user DTO returned by every single-user operation.
type UserResponse struct {
	ID    int64
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []UserResponse
}

func toResponse(u domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
