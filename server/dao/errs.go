package dao

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("the requested resource was not found")

	// ErrConstraintViolation is returned when a write would break a
	// uniqueness or reference constraint.
	ErrConstraintViolation = errors.New("a database constraint was violated")

	// ErrDecodingFailure is returned when a stored value cannot be decoded.
	ErrDecodingFailure = errors.New("field could not be decoded from DB storage format to model format")
)
