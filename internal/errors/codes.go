package errors

import "github.com/cockroachdb/errors"

// Standard error codes used across the service
const (
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeDatabase         = "database_error"
	ErrCodeSystem           = "system_error"
)

// Marker errors. Use Mark() on an ErrorBuilder to attach one of these so
// callers can classify errors with the Is* predicates below.
var (
	ErrHTTPClient       = errors.New(ErrCodeHTTPClient)
	ErrAlreadyExists    = errors.New(ErrCodeAlreadyExists)
	ErrNotFound         = errors.New(ErrCodeNotFound)
	ErrValidation       = errors.New(ErrCodeValidation)
	ErrInvalidOperation = errors.New(ErrCodeInvalidOperation)
	ErrPermissionDenied = errors.New(ErrCodePermissionDenied)
	ErrDatabase         = errors.New(ErrCodeDatabase)
	ErrSystem           = errors.New(ErrCodeSystem)
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func IsSystem(err error) bool {
	return errors.Is(err, ErrSystem)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
