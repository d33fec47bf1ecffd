package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/uninurse/uninurse/internal/domain/book"
	"github.com/uninurse/uninurse/internal/domain/patient"
)

// List shows every patient.
type List struct{}

func (c *List) Execute(m *book.Model) (Result, error) {
	m.UpdateFilteredPatientList(book.ShowAll)
	return Result{Feedback: "Listed all persons", Type: TypeDefault}, nil
}

// Find shows the patients whose name contains any of Keywords as a whole
// word, ignoring case.
type Find struct {
	Keywords []string
}

func (c *Find) Execute(m *book.Model) (Result, error) {
	m.UpdateFilteredPatientList(func(p patient.Patient) bool {
		for _, word := range strings.Fields(p.Name) {
			for _, k := range c.Keywords {
				if strings.EqualFold(word, k) {
					return true
				}
			}
		}
		return false
	})
	return Result{
		Feedback: fmt.Sprintf("%d persons listed!", len(m.FilteredPatients())),
		Type:     TypeFind,
	}, nil
}

// ViewTask focuses the task panel on the patient at Index.
type ViewTask struct {
	Index int
}

func (c *ViewTask) Execute(m *book.Model) (Result, error) {
	target, err := resolvePatient(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	m.SetPatientOfInterest(target)
	tasks := target.Tasks()
	if tasks.IsEmpty() {
		return Result{Feedback: fmt.Sprintf("%s has no tasks", target.Name), Type: TypeTask}, nil
	}
	return Result{
		Feedback: fmt.Sprintf("Tasks of %s:\n%s", target.Name, tasks),
		Type:     TypeTask,
	}, nil
}

// PatientsToday shows the patients with a task falling on Today.
type PatientsToday struct {
	Today time.Time
}

func (c *PatientsToday) Execute(m *book.Model) (Result, error) {
	m.UpdateFilteredPatientListDueToday(func(p patient.Patient) bool {
		return p.HasTaskDueOn(c.Today)
	})
	return Result{
		Feedback: "These are the patients with tasks due today",
		Type:     TypeTask,
	}, nil
}
