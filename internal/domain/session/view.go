package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/uninurse/uninurse/internal/domain/book"
	"github.com/uninurse/uninurse/internal/domain/patient"
)

// PatientView is the read-only JSON shape of a displayed patient. Index is
// the 1-based position in the displayed list, the number commands take.
type PatientView struct {
	Index       int              `json:"index"`
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	Address     string           `json:"address"`
	Tags        []string         `json:"tags"`
	Conditions  []string         `json:"conditions"`
	Medications []MedicationView `json:"medications"`
	Remarks     []string         `json:"remarks"`
	Tasks       []TaskView       `json:"tasks"`
}

type MedicationView struct {
	Type   string `json:"type"`
	Dosage string `json:"dosage"`
}

type TaskView struct {
	Description string     `json:"description"`
	Due         *time.Time `json:"due,omitempty"`
	Recurrence  string     `json:"recurrence,omitempty"`
}

// Snapshot is everything a UI needs after a command, taken under the lock.
type Snapshot struct {
	View     book.ViewMode
	Patients []patient.Patient
	Focus    *patient.Patient
	Total    int
	CanUndo  bool
	CanRedo  bool
}

// SnapshotView is the JSON form of Snapshot.
type SnapshotView struct {
	View    book.ViewMode `json:"view"`
	Shown   int           `json:"shown"`
	Total   int           `json:"total"`
	Focus   *PatientView  `json:"focus,omitempty"`
	CanUndo bool          `json:"can_undo"`
	CanRedo bool          `json:"can_redo"`
}

func newPatientView(index int, p patient.Patient) PatientView {
	v := PatientView{
		Index:       index,
		ID:          p.ID,
		Name:        p.Name,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		Tags:        []string{},
		Conditions:  []string{},
		Medications: []MedicationView{},
		Remarks:     []string{},
		Tasks:       []TaskView{},
	}
	for _, t := range p.Tags().Items() {
		v.Tags = append(v.Tags, t.Name)
	}
	for _, c := range p.Conditions().Items() {
		v.Conditions = append(v.Conditions, c.Description)
	}
	for _, m := range p.Medications().Items() {
		v.Medications = append(v.Medications, MedicationView{Type: m.Type, Dosage: m.Dosage})
	}
	for _, r := range p.Remarks().Items() {
		v.Remarks = append(v.Remarks, r.Text)
	}
	for _, t := range p.Tasks().Items() {
		tv := TaskView{Description: t.Description}
		if t.HasDue() {
			due := t.Due
			tv.Due = &due
		}
		if t.Recurrence.IsSet() {
			tv.Recurrence = t.Recurrence.String()
		}
		v.Tasks = append(v.Tasks, tv)
	}
	return v
}

func newPatientViews(patients []patient.Patient) []PatientView {
	out := make([]PatientView, len(patients))
	for i, p := range patients {
		out[i] = newPatientView(i+1, p)
	}
	return out
}

func newSnapshotView(s Snapshot) SnapshotView {
	v := SnapshotView{
		View:    s.View,
		Shown:   len(s.Patients),
		Total:   s.Total,
		CanUndo: s.CanUndo,
		CanRedo: s.CanRedo,
	}
	if s.Focus != nil {
		// Index 0: the focused patient may not be on screen.
		pv := newPatientView(0, *s.Focus)
		for i, p := range s.Patients {
			if p.ID == s.Focus.ID {
				pv.Index = i + 1
				break
			}
		}
		v.Focus = &pv
	}
	return v
}
