// Package command implements the units of work a nurse issues against the
// patient book. Each command validates its inputs against the displayed list,
// applies at most one mutation to the Model and reports a Result.
package command

import (
	"errors"
	"fmt"

	"github.com/uninurse/uninurse/internal/domain/attribute"
	"github.com/uninurse/uninurse/internal/domain/book"
)

// Command is a parsed, ready to run instruction.
type Command interface {
	Execute(m *book.Model) (Result, error)
}

// Type tells the UI which panel a result concerns.
type Type string

const (
	TypeDefault       Type = "default"
	TypeEditPatient   Type = "edit_patient"
	TypeTask          Type = "task"
	TypeAddPatient    Type = "add_patient"
	TypeDeletePatient Type = "delete_patient"
	TypeClear         Type = "clear"
	TypeFind          Type = "find"
	TypeUndo          Type = "undo"
	TypeRedo          Type = "redo"
	TypeHelp          Type = "help"
	TypeExit          Type = "exit"
)

// Result is what a command reports back. Tracker is set only when the master
// list changed.
type Result struct {
	Feedback string
	Type     Type
	Tracker  *book.PatientListTracker
	Exit     bool
}

// Mutated reports whether the command changed the book.
func (r Result) Mutated() bool {
	return r.Tracker != nil
}

// InvalidPersonIndexError is returned when a patient index does not address
// the displayed list.
type InvalidPersonIndexError struct {
	Index int
}

func (e *InvalidPersonIndexError) Error() string {
	return "The person index provided is invalid"
}

// InvalidAttributeIndexError is returned when a sub-index does not address the
// patient's list of Kind.
type InvalidAttributeIndexError struct {
	Kind  attribute.Kind
	Index int
}

func (e *InvalidAttributeIndexError) Error() string {
	return fmt.Sprintf("The %s index provided is invalid", e.Kind)
}

// UserError reports whether err is a rejection a nurse can act on, as opposed
// to a failure inside the application.
func UserError(err error) bool {
	var (
		personIdx *InvalidPersonIndexError
		attrIdx   *InvalidAttributeIndexError
		dupItem   *attribute.DuplicateItemError
		dupPerson *book.DuplicatePatientError
	)
	switch {
	case errors.As(err, &personIdx), errors.As(err, &attrIdx),
		errors.As(err, &dupItem), errors.As(err, &dupPerson):
		return true
	}
	return errors.Is(err, book.ErrNothingToUndo) || errors.Is(err, book.ErrNothingToRedo)
}
