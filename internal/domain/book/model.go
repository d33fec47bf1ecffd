// Package book holds the session state commands act on: the master patient
// list, the filtered view derived from it, the patient of interest and the
// undo history. A Model is not safe for concurrent use.
package book

import (
	"github.com/google/uuid"

	"github.com/uninurse/uninurse/internal/domain/patient"
)

// Predicate selects the patients shown in the filtered view.
type Predicate func(patient.Patient) bool

// ShowAll keeps every patient.
func ShowAll(patient.Patient) bool { return true }

// ViewMode tells the UI how to present the filtered list.
type ViewMode string

const (
	ViewPatients ViewMode = "patients"
	ViewTasks    ViewMode = "tasks"
	ViewToday    ViewMode = "today"
)

type Model struct {
	patients []patient.Patient
	filter   Predicate
	filtered []patient.Patient
	view     ViewMode
	interest uuid.UUID
	history  *history
}

// NewModel builds a model over patients, showing all of them. historyLimit
// bounds the undo depth; non-positive values use DefaultHistoryLimit.
func NewModel(patients []patient.Patient, historyLimit int) (*Model, error) {
	m := &Model{
		filter:  ShowAll,
		view:    ViewPatients,
		history: newHistory(historyLimit),
	}
	for _, p := range patients {
		if m.indexOfSame(p) >= 0 || m.indexOfID(p.ID) >= 0 {
			return nil, &DuplicatePatientError{Name: p.Name}
		}
		m.patients = append(m.patients, p)
	}
	m.refilter()
	return m, nil
}

// Patients returns a copy of the master list.
func (m *Model) Patients() []patient.Patient {
	return append([]patient.Patient(nil), m.patients...)
}

// FilteredPatients returns a copy of the displayed list.
func (m *Model) FilteredPatients() []patient.Patient {
	return append([]patient.Patient(nil), m.filtered...)
}

func (m *Model) ViewMode() ViewMode {
	return m.view
}

// UpdateFilteredPatientList re-derives the displayed list from predicate and
// switches to the patient view. The master list is untouched.
func (m *Model) UpdateFilteredPatientList(predicate Predicate) {
	m.setFilter(predicate, ViewPatients)
}

// UpdateFilteredPatientListWithTasks is UpdateFilteredPatientList for the task
// view.
func (m *Model) UpdateFilteredPatientListWithTasks(predicate Predicate) {
	m.setFilter(predicate, ViewTasks)
}

// UpdateFilteredPatientListDueToday filters for the view of tasks due today.
func (m *Model) UpdateFilteredPatientListDueToday(predicate Predicate) {
	m.setFilter(predicate, ViewToday)
}

// SetPatientOfInterest remembers p by identity.
func (m *Model) SetPatientOfInterest(p patient.Patient) {
	m.interest = p.ID
}

// ClearPatientOfInterest forgets the patient of interest.
func (m *Model) ClearPatientOfInterest() {
	m.interest = uuid.Nil
}

// PatientOfInterest resolves the remembered identity against the current
// master list. It reports false when nothing is remembered or the patient has
// since been removed.
func (m *Model) PatientOfInterest() (patient.Patient, bool) {
	if m.interest == uuid.Nil {
		return patient.Patient{}, false
	}
	i := m.indexOfID(m.interest)
	if i < 0 {
		return patient.Patient{}, false
	}
	return m.patients[i], true
}

// SetPerson replaces old with updated in the master list. old must be a value
// currently in the list.
func (m *Model) SetPerson(old, updated patient.Patient) (*PatientListTracker, error) {
	i := m.indexOf(old)
	if i < 0 {
		return nil, &PatientNotFoundError{Name: old.Name}
	}
	for j, p := range m.patients {
		if j != i && (p.ID == updated.ID || p.IsSamePatient(updated)) {
			return nil, &DuplicatePatientError{Name: updated.Name}
		}
	}
	next := m.Patients()
	next[i] = updated
	return m.commit(next, []patient.Patient{old}, []patient.Patient{updated}), nil
}

// AddPatient appends p to the master list.
func (m *Model) AddPatient(p patient.Patient) (*PatientListTracker, error) {
	if m.indexOfSame(p) >= 0 || m.indexOfID(p.ID) >= 0 {
		return nil, &DuplicatePatientError{Name: p.Name}
	}
	next := append(m.Patients(), p)
	return m.commit(next, nil, []patient.Patient{p}), nil
}

// DeletePatient removes p from the master list.
func (m *Model) DeletePatient(p patient.Patient) (*PatientListTracker, error) {
	i := m.indexOf(p)
	if i < 0 {
		return nil, &PatientNotFoundError{Name: p.Name}
	}
	next := make([]patient.Patient, 0, len(m.patients)-1)
	next = append(next, m.patients[:i]...)
	next = append(next, m.patients[i+1:]...)
	return m.commit(next, []patient.Patient{p}, nil), nil
}

// ClearPatients empties the master list.
func (m *Model) ClearPatients() *PatientListTracker {
	return m.commit(nil, m.Patients(), nil)
}

// CanUndo reports whether Undo has anything to revert.
func (m *Model) CanUndo() bool { return len(m.history.undo) > 0 }

// CanRedo reports whether Redo has anything to reapply.
func (m *Model) CanRedo() bool { return len(m.history.redo) > 0 }

// Undo reverts the most recent mutation. The view is reset to show all
// patients and focus moves to the patient the mutation touched.
func (m *Model) Undo() (*PatientListTracker, error) {
	s, ok := m.history.popUndo()
	if !ok {
		return nil, ErrNothingToUndo
	}
	return m.restore(s.before, s.tracker.inverse()), nil
}

// Redo reapplies the most recently undone mutation.
func (m *Model) Redo() (*PatientListTracker, error) {
	s, ok := m.history.popRedo()
	if !ok {
		return nil, ErrNothingToRedo
	}
	return m.restore(s.after, &PatientListTracker{
		Removed: s.tracker.Removed,
		Added:   s.tracker.Added,
	}), nil
}

func (m *Model) commit(next, removed, added []patient.Patient) *PatientListTracker {
	before := m.patients
	filteredBefore := m.FilteredPatients()
	m.patients = next
	m.refilter()
	t := &PatientListTracker{
		FilteredBefore: filteredBefore,
		FilteredAfter:  m.FilteredPatients(),
		Removed:        removed,
		Added:          added,
	}
	m.history.record(snapshot{before: before, after: next, tracker: t})
	return t
}

func (m *Model) restore(patients []patient.Patient, change *PatientListTracker) *PatientListTracker {
	filteredBefore := m.FilteredPatients()
	m.patients = append([]patient.Patient(nil), patients...)
	m.setFilter(ShowAll, ViewPatients)
	if p, ok := change.After(); ok {
		m.SetPatientOfInterest(p)
	} else if p, ok := change.Before(); ok && m.indexOfID(p.ID) >= 0 {
		m.SetPatientOfInterest(p)
	}
	return &PatientListTracker{
		FilteredBefore: filteredBefore,
		FilteredAfter:  m.FilteredPatients(),
		Removed:        change.Removed,
		Added:          change.Added,
	}
}

func (m *Model) setFilter(predicate Predicate, view ViewMode) {
	if predicate == nil {
		predicate = ShowAll
	}
	m.filter = predicate
	m.view = view
	m.refilter()
}

func (m *Model) refilter() {
	m.filtered = m.filtered[:0:0]
	for _, p := range m.patients {
		if m.filter(p) {
			m.filtered = append(m.filtered, p)
		}
	}
}

func (m *Model) indexOf(p patient.Patient) int {
	for i, existing := range m.patients {
		if existing.Equal(p) {
			return i
		}
	}
	return -1
}

func (m *Model) indexOfID(id uuid.UUID) int {
	for i, existing := range m.patients {
		if existing.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) indexOfSame(p patient.Patient) int {
	for i, existing := range m.patients {
		if existing.IsSamePatient(p) {
			return i
		}
	}
	return -1
}
