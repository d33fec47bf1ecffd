package command

import (
	"fmt"

	"github.com/uninurse/uninurse/internal/domain/book"
	"github.com/uninurse/uninurse/internal/domain/patient"
)

// AddPatient adds a new patient record to the book.
type AddPatient struct {
	Patient patient.Patient
}

func (c *AddPatient) Execute(m *book.Model) (Result, error) {
	tracker, err := m.AddPatient(c.Patient)
	if err != nil {
		return Result{}, err
	}
	m.SetPatientOfInterest(c.Patient)
	return Result{
		Feedback: fmt.Sprintf("New patient added: %s", c.Patient),
		Type:     TypeAddPatient,
		Tracker:  tracker,
	}, nil
}

// DeletePatient removes the patient at Index of the displayed list.
type DeletePatient struct {
	Index int
}

func (c *DeletePatient) Execute(m *book.Model) (Result, error) {
	target, err := resolvePatient(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	tracker, err := m.DeletePatient(target)
	if err != nil {
		return Result{}, fmt.Errorf("delete patient: %w", err)
	}
	return Result{
		Feedback: fmt.Sprintf("Deleted Patient: %s", target),
		Type:     TypeDeletePatient,
		Tracker:  tracker,
	}, nil
}

// Clear removes every patient.
type Clear struct{}

func (c *Clear) Execute(m *book.Model) (Result, error) {
	tracker := m.ClearPatients()
	m.ClearPatientOfInterest()
	return Result{
		Feedback: "UniNurse book has been cleared!",
		Type:     TypeClear,
		Tracker:  tracker,
	}, nil
}
