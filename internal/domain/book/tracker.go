package book

import "github.com/uninurse/uninurse/internal/domain/patient"

// PatientListTracker records what a single mutation did to the book: the
// displayed list on either side of it and the patient values that left and
// entered the master list. A replacement shows up as one removed and one added
// value.
type PatientListTracker struct {
	FilteredBefore []patient.Patient
	FilteredAfter  []patient.Patient
	Removed        []patient.Patient
	Added          []patient.Patient
}

// Before returns the first removed value, if any.
func (t *PatientListTracker) Before() (patient.Patient, bool) {
	if t == nil || len(t.Removed) == 0 {
		return patient.Patient{}, false
	}
	return t.Removed[0], true
}

// After returns the first added value, if any.
func (t *PatientListTracker) After() (patient.Patient, bool) {
	if t == nil || len(t.Added) == 0 {
		return patient.Patient{}, false
	}
	return t.Added[0], true
}

// inverse swaps the direction of the recorded change.
func (t *PatientListTracker) inverse() *PatientListTracker {
	return &PatientListTracker{
		FilteredBefore: t.FilteredAfter,
		FilteredAfter:  t.FilteredBefore,
		Removed:        t.Added,
		Added:          t.Removed,
	}
}
