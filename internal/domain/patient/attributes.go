package patient

import (
	"fmt"
	"strings"
	"time"

	"github.com/uninurse/uninurse/internal/domain/attribute"
)

// DueLayout is the date-time layout nurses type and read, e.g. "22-4-22 1345".
const DueLayout = "2-1-06 1504"

// Unit is the period a recurring task repeats over.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
)

// Recurrence repeats a task every Every units. The zero value means the task
// does not recur.
type Recurrence struct {
	Every int  `json:"every"`
	Unit  Unit `json:"unit"`
}

// IsSet reports whether the recurrence repeats at all.
func (r Recurrence) IsSet() bool {
	return r.Every > 0 && r.Unit != ""
}

func (r Recurrence) String() string {
	if !r.IsSet() {
		return ""
	}
	if r.Every == 1 {
		return fmt.Sprintf("1 %s", r.Unit)
	}
	return fmt.Sprintf("%d %ss", r.Every, r.Unit)
}

// Task is something a nurse has to do for a patient, optionally at a due
// date-time and optionally repeating.
type Task struct {
	Description string
	Due         time.Time
	Recurrence  Recurrence
}

// HasDue reports whether the task carries a due date-time.
func (t Task) HasDue() bool {
	return !t.Due.IsZero()
}

// IsDueOn reports whether the task falls on the calendar day of day. A
// recurring task is due on its first due day and on every repetition after it.
func (t Task) IsDueOn(day time.Time) bool {
	if !t.HasDue() {
		return false
	}
	dy, dm, dd := t.Due.Date()
	y, m, d := day.Date()
	first := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if target.Equal(first) {
		return true
	}
	if !t.Recurrence.IsSet() || target.Before(first) {
		return false
	}
	switch t.Recurrence.Unit {
	case UnitDay, UnitWeek:
		step := t.Recurrence.Every
		if t.Recurrence.Unit == UnitWeek {
			step *= 7
		}
		days := int(target.Sub(first).Hours() / 24)
		return days%step == 0
	case UnitMonth:
		if d != dd {
			return false
		}
		months := (y-dy)*12 + int(m-dm)
		return months%t.Recurrence.Every == 0
	}
	return false
}

func (t Task) Equal(other Task) bool {
	return t.Description == other.Description &&
		t.Due.Equal(other.Due) &&
		t.Recurrence == other.Recurrence
}

func (t Task) String() string {
	s := t.Description
	if t.HasDue() {
		s += " | " + t.Due.Format(DueLayout)
	}
	if t.Recurrence.IsSet() {
		s += " | " + t.Recurrence.String()
	}
	return s
}

func sameTask(a, b Task) bool {
	return strings.EqualFold(a.Description, b.Description) &&
		a.Due.Equal(b.Due) &&
		a.Recurrence == b.Recurrence
}

// Condition is a medical condition the patient has.
type Condition struct {
	Description string
}

func (c Condition) Equal(other Condition) bool { return c == other }
func (c Condition) String() string             { return c.Description }

func sameCondition(a, b Condition) bool {
	return strings.EqualFold(a.Description, b.Description)
}

// Medication is a drug the patient takes and its dosage.
type Medication struct {
	Type   string
	Dosage string
}

func (m Medication) Equal(other Medication) bool { return m == other }

func (m Medication) String() string {
	return m.Type + " | " + m.Dosage
}

func sameMedication(a, b Medication) bool {
	return strings.EqualFold(a.Type, b.Type) && strings.EqualFold(a.Dosage, b.Dosage)
}

// Remark is a free-text note about the patient.
type Remark struct {
	Text string
}

func (r Remark) Equal(other Remark) bool { return r == other }
func (r Remark) String() string          { return r.Text }

func sameRemark(a, b Remark) bool {
	return strings.EqualFold(a.Text, b.Text)
}

// Tag is a single alphanumeric label such as a ward or risk flag.
type Tag struct {
	Name string
}

func (t Tag) Equal(other Tag) bool { return t == other }
func (t Tag) String() string       { return t.Name }

func sameTag(a, b Tag) bool {
	return strings.EqualFold(a.Name, b.Name)
}

type (
	TaskList       = attribute.List[Task]
	ConditionList  = attribute.List[Condition]
	MedicationList = attribute.List[Medication]
	RemarkList     = attribute.List[Remark]
	TagList        = attribute.List[Tag]
)

func NewTaskList(items ...Task) (TaskList, error) {
	return attribute.NewList(attribute.KindTask, sameTask, items...)
}

func NewConditionList(items ...Condition) (ConditionList, error) {
	return attribute.NewList(attribute.KindCondition, sameCondition, items...)
}

func NewMedicationList(items ...Medication) (MedicationList, error) {
	return attribute.NewList(attribute.KindMedication, sameMedication, items...)
}

func NewRemarkList(items ...Remark) (RemarkList, error) {
	return attribute.NewList(attribute.KindRemark, sameRemark, items...)
}

func NewTagList(items ...Tag) (TagList, error) {
	return attribute.NewList(attribute.KindTag, sameTag, items...)
}

func emptyTasks() TaskList {
	l, _ := NewTaskList()
	return l
}

func emptyConditions() ConditionList {
	l, _ := NewConditionList()
	return l
}

func emptyMedications() MedicationList {
	l, _ := NewMedicationList()
	return l
}

func emptyRemarks() RemarkList {
	l, _ := NewRemarkList()
	return l
}

func emptyTags() TagList {
	l, _ := NewTagList()
	return l
}
