package command

import (
	"fmt"

	"github.com/uninurse/uninurse/internal/domain/attribute"
	"github.com/uninurse/uninurse/internal/domain/book"
	"github.com/uninurse/uninurse/internal/domain/patient"
)

// Binding ties an attribute kind to the Patient accessor and copy constructor
// for its list, so one command implementation serves every kind.
type Binding[T attribute.Item[T]] struct {
	Kind attribute.Kind
	Type Type
	Get  func(patient.Patient) attribute.List[T]
	With func(patient.Patient, attribute.List[T]) patient.Patient
}

var (
	Tasks = Binding[patient.Task]{
		Kind: attribute.KindTask,
		Type: TypeTask,
		Get:  patient.Patient.Tasks,
		With: patient.Patient.WithTasks,
	}
	Conditions = Binding[patient.Condition]{
		Kind: attribute.KindCondition,
		Type: TypeEditPatient,
		Get:  patient.Patient.Conditions,
		With: patient.Patient.WithConditions,
	}
	Medications = Binding[patient.Medication]{
		Kind: attribute.KindMedication,
		Type: TypeEditPatient,
		Get:  patient.Patient.Medications,
		With: patient.Patient.WithMedications,
	}
	Remarks = Binding[patient.Remark]{
		Kind: attribute.KindRemark,
		Type: TypeEditPatient,
		Get:  patient.Patient.Remarks,
		With: patient.Patient.WithRemarks,
	}
	Tags = Binding[patient.Tag]{
		Kind: attribute.KindTag,
		Type: TypeEditPatient,
		Get:  patient.Patient.Tags,
		With: patient.Patient.WithTags,
	}
)

// AddAttribute appends Item to the list of the patient at PatientIndex.
type AddAttribute[T attribute.Item[T]] struct {
	Binding      Binding[T]
	PatientIndex int
	Item         T
}

func NewAdd[T attribute.Item[T]](b Binding[T], patientIndex int, item T) *AddAttribute[T] {
	return &AddAttribute[T]{Binding: b, PatientIndex: patientIndex, Item: item}
}

func (c *AddAttribute[T]) Execute(m *book.Model) (Result, error) {
	target, err := resolvePatient(m, c.PatientIndex)
	if err != nil {
		return Result{}, err
	}
	next, err := c.Binding.Get(target).Add(c.Item)
	if err != nil {
		return Result{}, err
	}
	updated := c.Binding.With(target, next)
	tracker, err := m.SetPerson(target, updated)
	if err != nil {
		return Result{}, fmt.Errorf("add %s: %w", c.Binding.Kind, err)
	}
	m.SetPatientOfInterest(updated)
	return Result{
		Feedback: fmt.Sprintf("New %s added to %s: %s", c.Binding.Kind, updated.Name, c.Item),
		Type:     c.Binding.Type,
		Tracker:  tracker,
	}, nil
}

// EditAttribute overwrites the item at Index in the list of the patient at
// PatientIndex.
type EditAttribute[T attribute.Item[T]] struct {
	Binding      Binding[T]
	PatientIndex int
	Index        int
	Item         T
}

func NewEdit[T attribute.Item[T]](b Binding[T], patientIndex, index int, item T) *EditAttribute[T] {
	return &EditAttribute[T]{Binding: b, PatientIndex: patientIndex, Index: index, Item: item}
}

func (c *EditAttribute[T]) Execute(m *book.Model) (Result, error) {
	target, err := resolvePatient(m, c.PatientIndex)
	if err != nil {
		return Result{}, err
	}
	list := c.Binding.Get(target)
	before, err := resolveItem(list, c.Index)
	if err != nil {
		return Result{}, err
	}
	next, err := list.Edit(c.Index, c.Item)
	if err != nil {
		return Result{}, err
	}
	updated := c.Binding.With(target, next)
	tracker, err := m.SetPerson(target, updated)
	if err != nil {
		return Result{}, fmt.Errorf("edit %s: %w", c.Binding.Kind, err)
	}
	m.SetPatientOfInterest(updated)
	return Result{
		Feedback: fmt.Sprintf("Edited %s %d of %s:\nBefore: %s\nAfter: %s",
			c.Binding.Kind, c.Index+1, updated.Name, before, c.Item),
		Type:    c.Binding.Type,
		Tracker: tracker,
	}, nil
}

// DeleteAttribute removes the item at Index from the list of the patient at
// PatientIndex and resets the view to show every patient.
type DeleteAttribute[T attribute.Item[T]] struct {
	Binding      Binding[T]
	PatientIndex int
	Index        int
}

func NewDelete[T attribute.Item[T]](b Binding[T], patientIndex, index int) *DeleteAttribute[T] {
	return &DeleteAttribute[T]{Binding: b, PatientIndex: patientIndex, Index: index}
}

func (c *DeleteAttribute[T]) Execute(m *book.Model) (Result, error) {
	target, err := resolvePatient(m, c.PatientIndex)
	if err != nil {
		return Result{}, err
	}
	list := c.Binding.Get(target)
	deleted, err := resolveItem(list, c.Index)
	if err != nil {
		return Result{}, err
	}
	next, err := list.Delete(c.Index)
	if err != nil {
		return Result{}, err
	}
	updated := c.Binding.With(target, next)
	tracker, err := m.SetPerson(target, updated)
	if err != nil {
		return Result{}, fmt.Errorf("delete %s: %w", c.Binding.Kind, err)
	}
	m.UpdateFilteredPatientList(book.ShowAll)
	m.SetPatientOfInterest(updated)
	tracker.FilteredAfter = m.FilteredPatients()
	return Result{
		Feedback: fmt.Sprintf("Deleted %s %d from %s: %s", c.Binding.Kind, c.Index+1, updated.Name, deleted),
		Type:     c.Binding.Type,
		Tracker:  tracker,
	}, nil
}

// ListAttribute shows only the patients that have at least one item of the
// bound kind. Tasks are shown in the task view.
type ListAttribute[T attribute.Item[T]] struct {
	Binding Binding[T]
}

func NewList[T attribute.Item[T]](b Binding[T]) *ListAttribute[T] {
	return &ListAttribute[T]{Binding: b}
}

func (c *ListAttribute[T]) Execute(m *book.Model) (Result, error) {
	hasItems := func(p patient.Patient) bool { return !c.Binding.Get(p).IsEmpty() }
	typ := TypeDefault
	if c.Binding.Kind == attribute.KindTask {
		m.UpdateFilteredPatientListWithTasks(hasItems)
		typ = TypeTask
	} else {
		m.UpdateFilteredPatientList(hasItems)
	}
	return Result{
		Feedback: fmt.Sprintf("Listed all %ss", c.Binding.Kind),
		Type:     typ,
	}, nil
}

func resolvePatient(m *book.Model, index int) (patient.Patient, error) {
	shown := m.FilteredPatients()
	if index < 0 || index >= len(shown) {
		return patient.Patient{}, &InvalidPersonIndexError{Index: index}
	}
	return shown[index], nil
}

func resolveItem[T attribute.Item[T]](l attribute.List[T], index int) (T, error) {
	item, err := l.Get(index)
	if err != nil {
		return item, &InvalidAttributeIndexError{Kind: l.Kind(), Index: index}
	}
	return item, nil
}
