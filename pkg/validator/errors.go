package validator

import "errors"

var (
	// ErrValidationFailed matches any ValidationErrors value via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmptyFieldReference is returned when a comparator is built without field names.
	ErrEmptyFieldReference = errors.New("field reference must name at least one field")

	// ErrEmptyFieldName is returned when a field reference contains an empty name.
	ErrEmptyFieldName = errors.New("field name must not be empty")

	// ErrNilSubject is returned by subject adapters that cannot wrap a nil value.
	ErrNilSubject = errors.New("validation subject is nil")

	// ErrNotAStruct is returned by Struct when the value is not a struct or pointer to struct.
	ErrNotAStruct = errors.New("validation subject is not a struct")
)
