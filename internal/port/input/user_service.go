package input

import (
	"context"

	"github.com/cashflow/payments-api/internal/core"
)

// UserService is an input port (primary port) for user lookup and credential
// verification. Token issuance itself lives behind an output port; this
// service only establishes the validated identity.
type UserService interface {
	// GetUser retrieves a user by username
	GetUser(ctx context.Context, username string) GetUserResult

	// ValidateUserPassword verifies a plaintext password against the stored
	// hash. Unknown username and wrong password are indistinguishable in the
	// result, so callers cannot enumerate usernames.
	ValidateUserPassword(ctx context.Context, username, plaintext string) ValidateUserPasswordResult

	// AddUser provisions a user with a hashed password if the username is
	// free. Used by the seed command and tests only.
	AddUser(ctx context.Context, username, plaintext string) AddUserResult
}

// GetUserResult is the closed result set of GetUser.
type GetUserResult interface{ isGetUserResult() }

// ValidateUserPasswordResult is the closed result set of ValidateUserPassword.
type ValidateUserPasswordResult interface{ isValidateUserPasswordResult() }

// AddUserResult is the closed result set of AddUser.
type AddUserResult interface{ isAddUserResult() }

// GetUserSuccess carries the resolved user.
type GetUserSuccess struct {
	User core.User
}

// UserNotFoundError reports a username lookup miss.
type UserNotFoundError struct {
	Message string
}

// ValidateUserPasswordSuccess marks a verified credential.
type ValidateUserPasswordSuccess struct{}

// UserPasswordInvalidError reports a failed credential check. The message is
// identical whether the username is unknown or the password is wrong.
type UserPasswordInvalidError struct {
	Message string
}

// AddUserSuccess reports whether a user was created or already existed.
type AddUserSuccess struct {
	Created bool
}

func (GetUserSuccess) isGetUserResult() {}
func (UserNotFoundError) isGetUserResult() {}

func (ValidateUserPasswordSuccess) isValidateUserPasswordResult() {}
func (UserPasswordInvalidError) isValidateUserPasswordResult() {}

func (AddUserSuccess) isAddUserResult() {}

func (UnexpectedError) isGetUserResult() {}
func (UnexpectedError) isValidateUserPasswordResult() {}
func (UnexpectedError) isAddUserResult() {}
