package book

import (
	"errors"
	"fmt"
)

var (
	ErrNothingToUndo = errors.New("There is no command to undo!")
	ErrNothingToRedo = errors.New("There is no command to redo!")
)

// DuplicatePatientError is returned when a patient with the same name is
// already in the book.
type DuplicatePatientError struct {
	Name string
}

func (e *DuplicatePatientError) Error() string {
	return "This patient already exists in the uninurse book"
}

// PatientNotFoundError reports a replacement or removal of a patient value
// that is not in the master list. It signals a caller bug, not bad input.
type PatientNotFoundError struct {
	Name string
}

func (e *PatientNotFoundError) Error() string {
	return fmt.Sprintf("book: patient %q not in master list", e.Name)
}
