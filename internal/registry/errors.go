// internal/registry/errors.go
package registry

import "fmt"

// ValidationError reports a malformed field before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type InvalidSignatureError struct {
	Reason string
}

func (e *InvalidSignatureError) Error() string {
	return "invalid registration signature: " + e.Reason
}

// AccessDeniedError carries the role/ownership the caller was missing.
type AccessDeniedError struct {
	Need string
}

func (e *AccessDeniedError) Error() string {
	return "access denied: requires " + e.Need
}

type InsufficientFeeError struct {
	Required uint64
	Given    uint64
}

func (e *InsufficientFeeError) Error() string {
	return fmt.Sprintf("insufficient fee: required %d, got %d", e.Required, e.Given)
}

// NotFoundError covers unknown profiles, invalid project ids and
// out-of-range sub-record indexes.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

type DeadlineInvalidError struct {
	Deadline int64
	Now      int64
}

func (e *DeadlineInvalidError) Error() string {
	return fmt.Sprintf("proposal deadline %d is not after current time %d", e.Deadline, e.Now)
}

type DeadlinePassedError struct {
	Deadline int64
	Now      int64
}

func (e *DeadlinePassedError) Error() string {
	return fmt.Sprintf("proposal deadline %d passed at current time %d", e.Deadline, e.Now)
}

type ProjectClosedError struct {
	ID uint64
}

func (e *ProjectClosedError) Error() string {
	return fmt.Sprintf("project %d is closed for proposals", e.ID)
}

type AlreadyRegisteredError struct {
	Address string
}

func (e *AlreadyRegisteredError) Error() string {
	return "profile already registered for " + e.Address
}
