package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNotFoundError(t *testing.T) {
	assert.Equal(t, "User not found", ErrUserNotFound.Error())
	assert.Equal(t, http.StatusNotFound, ErrUserNotFound.HTTPStatus())
	assert.Equal(t, codes.NotFound, ErrUserNotFound.GRPCStatus().Code())

	bare := NewNotFoundError("order", "")
	assert.Equal(t, "order not found", bare.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "must be a valid email")
	assert.Equal(t, "validation failed: email - must be a valid email", err.Error())
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus())
	assert.Equal(t, codes.InvalidArgument, err.GRPCStatus().Code())

	noField := NewValidationError("", "bad input")
	assert.Equal(t, "validation failed: bad input", noField.Error())
}

func TestInternalError_UnwrapAndHideCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewInternalError("failed to list users", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to list users: connection refused", err.Error())

	st := err.GRPCStatus()
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "failed to list users", st.Message())
}

func TestStatusFromWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("get user: %w", ErrUserNotFound)

	st, ok := status.FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())

	var hs HTTPStatuser
	require.True(t, stderrors.As(wrapped, &hs))
	assert.Equal(t, http.StatusNotFound, hs.HTTPStatus())
}

func TestFromValidator(t *testing.T) {
	type payload struct {
		Name  string `validate:"required,max=5"`
		Email string `validate:"required,email"`
	}
	v := validator.New()

	single := FromValidator(v.Struct(payload{Name: "toolong", Email: "a@x.com"}))
	assert.Equal(t, "Name", single.Field)
	assert.Equal(t, "Name must be at most 5 characters", single.Message)

	multi := FromValidator(v.Struct(payload{Email: "nope"}))
	assert.Empty(t, multi.Field)
	assert.Equal(t, "Name is required, Email must be a valid email", multi.Message)

	plain := FromValidator(fmt.Errorf("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", plain.Message)
}
