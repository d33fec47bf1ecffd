package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/uninurse/uninurse/internal/domain/patient"
)

// FormatVersion is written into every encoded book.
const FormatVersion = 1

type bookRecord struct {
	Version  int             `json:"version"`
	SavedAt  time.Time       `json:"saved_at"`
	Patients []patientRecord `json:"patients"`
}

type patientRecord struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Address     string             `json:"address"`
	Tasks       []taskRecord       `json:"tasks,omitempty"`
	Conditions  []string           `json:"conditions,omitempty"`
	Medications []medicationRecord `json:"medications,omitempty"`
	Remarks     []string           `json:"remarks,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
}

type taskRecord struct {
	Description string              `json:"description"`
	Due         *time.Time          `json:"due,omitempty"`
	Recurrence  *patient.Recurrence `json:"recurrence,omitempty"`
}

type medicationRecord struct {
	Type   string `json:"type"`
	Dosage string `json:"dosage"`
}

// EncodeBook serializes the master list in order.
func EncodeBook(patients []patient.Patient, savedAt time.Time) ([]byte, error) {
	rec := bookRecord{Version: FormatVersion, SavedAt: savedAt.UTC(), Patients: make([]patientRecord, 0, len(patients))}
	for _, p := range patients {
		rec.Patients = append(rec.Patients, toRecord(p))
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode book: %w", err)
	}
	return data, nil
}

// DecodeBook parses data written by EncodeBook. Records that would break a
// list invariant, such as duplicate tasks, are rejected.
func DecodeBook(data []byte) ([]patient.Patient, error) {
	var rec bookRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode book: %w", err)
	}
	if rec.Version > FormatVersion {
		return nil, fmt.Errorf("decode book: unsupported format version %d", rec.Version)
	}
	patients := make([]patient.Patient, 0, len(rec.Patients))
	seen := make(map[uuid.UUID]bool, len(rec.Patients))
	for _, pr := range rec.Patients {
		p, err := fromRecord(pr)
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("decode book: patient id %s appears twice", p.ID)
		}
		seen[p.ID] = true
		patients = append(patients, p)
	}
	return patients, nil
}

func encodePatient(p patient.Patient) ([]byte, error) {
	data, err := json.Marshal(toRecord(p))
	if err != nil {
		return nil, fmt.Errorf("encode patient %q: %w", p.Name, err)
	}
	return data, nil
}

func decodePatient(data []byte) (patient.Patient, error) {
	var pr patientRecord
	if err := json.Unmarshal(data, &pr); err != nil {
		return patient.Patient{}, fmt.Errorf("decode patient: %w", err)
	}
	return fromRecord(pr)
}

func toRecord(p patient.Patient) patientRecord {
	pr := patientRecord{
		ID:      p.ID,
		Name:    p.Name,
		Phone:   p.Phone,
		Email:   p.Email,
		Address: p.Address,
	}
	for _, t := range p.Tasks().Items() {
		tr := taskRecord{Description: t.Description}
		if t.HasDue() {
			due := t.Due
			tr.Due = &due
		}
		if t.Recurrence.IsSet() {
			r := t.Recurrence
			tr.Recurrence = &r
		}
		pr.Tasks = append(pr.Tasks, tr)
	}
	for _, c := range p.Conditions().Items() {
		pr.Conditions = append(pr.Conditions, c.Description)
	}
	for _, m := range p.Medications().Items() {
		pr.Medications = append(pr.Medications, medicationRecord{Type: m.Type, Dosage: m.Dosage})
	}
	for _, r := range p.Remarks().Items() {
		pr.Remarks = append(pr.Remarks, r.Text)
	}
	for _, t := range p.Tags().Items() {
		pr.Tags = append(pr.Tags, t.Name)
	}
	return pr
}

func fromRecord(pr patientRecord) (patient.Patient, error) {
	if pr.ID == uuid.Nil {
		return patient.Patient{}, fmt.Errorf("decode patient %q: missing id", pr.Name)
	}
	p := patient.New(pr.Name, pr.Phone, pr.Email, pr.Address)
	p.ID = pr.ID

	tasks := make([]patient.Task, 0, len(pr.Tasks))
	for _, tr := range pr.Tasks {
		t := patient.Task{Description: tr.Description}
		if tr.Due != nil {
			t.Due = *tr.Due
		}
		if tr.Recurrence != nil {
			t.Recurrence = *tr.Recurrence
		}
		tasks = append(tasks, t)
	}
	conditions := make([]patient.Condition, 0, len(pr.Conditions))
	for _, c := range pr.Conditions {
		conditions = append(conditions, patient.Condition{Description: c})
	}
	medications := make([]patient.Medication, 0, len(pr.Medications))
	for _, m := range pr.Medications {
		medications = append(medications, patient.Medication{Type: m.Type, Dosage: m.Dosage})
	}
	remarks := make([]patient.Remark, 0, len(pr.Remarks))
	for _, r := range pr.Remarks {
		remarks = append(remarks, patient.Remark{Text: r})
	}
	tags := make([]patient.Tag, 0, len(pr.Tags))
	for _, t := range pr.Tags {
		tags = append(tags, patient.Tag{Name: t})
	}

	wrap := func(err error) error { return fmt.Errorf("decode patient %q: %w", pr.Name, err) }
	tl, err := patient.NewTaskList(tasks...)
	if err != nil {
		return patient.Patient{}, wrap(err)
	}
	cl, err := patient.NewConditionList(conditions...)
	if err != nil {
		return patient.Patient{}, wrap(err)
	}
	ml, err := patient.NewMedicationList(medications...)
	if err != nil {
		return patient.Patient{}, wrap(err)
	}
	rl, err := patient.NewRemarkList(remarks...)
	if err != nil {
		return patient.Patient{}, wrap(err)
	}
	gl, err := patient.NewTagList(tags...)
	if err != nil {
		return patient.Patient{}, wrap(err)
	}
	return p.WithTasks(tl).WithConditions(cl).WithMedications(ml).WithRemarks(rl).WithTags(gl), nil
}
