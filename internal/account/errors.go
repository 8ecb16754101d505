package account

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Expected outcomes of the account operations. Handlers map these to HTTP
// status codes; none of them is an internal fault.
var (
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked")
	ErrEmailNotVerified   = errors.New("please verify your email before logging in")
	ErrInvalidToken       = errors.New("invalid verification token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrNotFound           = errors.New("user not found")
	ErrUnsupportedSubject = errors.New("subject is not part of the curriculum for this grade")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError reports one or more rejected input fields. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Invalid(reasons ...string) error {
	return &ValidationError{Reasons: reasons}
}

// LockedError carries the remaining lockout duration. It matches
// ErrAccountLocked under errors.Is.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	minutes := int(math.Ceil(e.Remaining.Minutes()))
	return fmt.Sprintf("account is locked. Try again in %d minutes", minutes)
}

func (e *LockedError) Is(target error) bool {
	return target == ErrAccountLocked
}
