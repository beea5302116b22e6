package service

import "errors"

// Messages returned to clients. They match what existing browser clients
// display.
const (
	msgStudentNotFound = "Student not found."
	msgDuplicateName   = "Student with that name already exists."
)

type studentNotFoundError struct{ id int64 }

func (e studentNotFoundError) Error() string { return msgStudentNotFound }

// ErrStudentNotFound returns the error reported for an unknown student id.
func ErrStudentNotFound(id int64) error { return studentNotFoundError{id: id} }

// IsStudentNotFound reports whether err is a studentNotFoundError.
func IsStudentNotFound(err error) bool {
	var e studentNotFoundError
	return errors.As(err, &e)
}

type duplicateNameError struct{ name string }

func (e duplicateNameError) Error() string { return msgDuplicateName }

// IsDuplicateName reports whether err is a duplicateNameError.
func IsDuplicateName(err error) bool {
	var e duplicateNameError
	return errors.As(err, &e)
}

type invalidInputError struct{ msg string }

func (e invalidInputError) Error() string { return e.msg }

// ErrInvalidInput wraps a validation message.
func ErrInvalidInput(msg string) error { return invalidInputError{msg: msg} }

// IsInvalidInput reports whether err is an invalidInputError.
func IsInvalidInput(err error) bool {
	var e invalidInputError
	return errors.As(err, &e)
}
