package config

import (
	"errors"
	"fmt"

	"claudewarp/config/validation"
)

// ValidationError reports bad input: an empty required field, the reserved
// name, an unknown shell, or a missing credential.
type ValidationError = validation.Error

// ProfileNotFoundError reports a name that does not resolve to a profile
type ProfileNotFoundError struct {
	Name string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile '%s' does not exist", e.Name)
}

// DuplicateProfileError reports a name collision on add or rename
type DuplicateProfileError struct {
	Name string
}

func (e *DuplicateProfileError) Error() string {
	return fmt.Sprintf("profile '%s' already exists", e.Name)
}

func validationErr(field, format string, args ...any) error {
	return validation.Errorf(field, format, args...)
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is or wraps a ProfileNotFoundError
func IsNotFound(err error) bool {
	var target *ProfileNotFoundError
	return errors.As(err, &target)
}

// IsDuplicate reports whether err is or wraps a DuplicateProfileError
func IsDuplicate(err error) bool {
	var target *DuplicateProfileError
	return errors.As(err, &target)
}
