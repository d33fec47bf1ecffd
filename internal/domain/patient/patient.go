// Package patient holds the Patient aggregate and the attribute values nurses
// record against it.
package patient

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient is an immutable record. Every With* method returns a modified copy
// and leaves the receiver as it was.
type Patient struct {
	ID      uuid.UUID
	Name    string
	Phone   string
	Email   string
	Address string

	tasks       TaskList
	conditions  ConditionList
	medications MedicationList
	remarks     RemarkList
	tags        TagList
}

// New creates a patient with a fresh identity and empty attribute lists.
func New(name, phone, email, address string) Patient {
	return Patient{
		ID:          uuid.New(),
		Name:        name,
		Phone:       phone,
		Email:       email,
		Address:     address,
		tasks:       emptyTasks(),
		conditions:  emptyConditions(),
		medications: emptyMedications(),
		remarks:     emptyRemarks(),
		tags:        emptyTags(),
	}
}

func (p Patient) Tasks() TaskList {
	if p.tasks.Kind() == "" {
		return emptyTasks()
	}
	return p.tasks
}

func (p Patient) Conditions() ConditionList {
	if p.conditions.Kind() == "" {
		return emptyConditions()
	}
	return p.conditions
}

func (p Patient) Medications() MedicationList {
	if p.medications.Kind() == "" {
		return emptyMedications()
	}
	return p.medications
}

func (p Patient) Remarks() RemarkList {
	if p.remarks.Kind() == "" {
		return emptyRemarks()
	}
	return p.remarks
}

func (p Patient) Tags() TagList {
	if p.tags.Kind() == "" {
		return emptyTags()
	}
	return p.tags
}

func (p Patient) WithTasks(l TaskList) Patient {
	p.tasks = l
	return p
}

func (p Patient) WithConditions(l ConditionList) Patient {
	p.conditions = l
	return p
}

func (p Patient) WithMedications(l MedicationList) Patient {
	p.medications = l
	return p
}

func (p Patient) WithRemarks(l RemarkList) Patient {
	p.remarks = l
	return p
}

func (p Patient) WithTags(l TagList) Patient {
	p.tags = l
	return p
}

// Equal compares every field, identity included.
func (p Patient) Equal(other Patient) bool {
	return p.ID == other.ID &&
		p.Name == other.Name &&
		p.Phone == other.Phone &&
		p.Email == other.Email &&
		p.Address == other.Address &&
		p.Tasks().Equal(other.Tasks()) &&
		p.Conditions().Equal(other.Conditions()) &&
		p.Medications().Equal(other.Medications()) &&
		p.Remarks().Equal(other.Remarks()) &&
		p.Tags().Equal(other.Tags())
}

// IsSamePatient reports whether other names the same person. Two records are
// the same patient when their names match ignoring case.
func (p Patient) IsSamePatient(other Patient) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(other.Name))
}

// HasTaskDueOn reports whether any task falls on the day of t.
func (p Patient) HasTaskDueOn(day time.Time) bool {
	for _, t := range p.Tasks().Items() {
		if t.IsDueOn(day) {
			return true
		}
	}
	return false
}

func (p Patient) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; Phone: %s; Email: %s; Address: %s", p.Name, p.Phone, p.Email, p.Address)
	if tags := p.Tags(); !tags.IsEmpty() {
		names := make([]string, 0, tags.Size())
		for _, t := range tags.Items() {
			names = append(names, t.Name)
		}
		fmt.Fprintf(&b, "; Tags: [%s]", strings.Join(names, ", "))
	}
	return b.String()
}
