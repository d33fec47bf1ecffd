package command

import (
	"errors"
	"testing"
	"time"

	"github.com/uninurse/uninurse/internal/domain/book"
	"github.com/uninurse/uninurse/internal/domain/patient"
)

func TestAddPatient(t *testing.T) {
	m := modelWith(t, alice())
	res, err := (&AddPatient{Patient: bob()}).Execute(m)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(m.Patients()) != 2 || res.Type != TypeAddPatient || !res.Mutated() {
		t.Errorf("unexpected state after add: %+v", res)
	}
	if focus, ok := m.PatientOfInterest(); !ok || focus.Name != "Bob Choo" {
		t.Error("new patient should be the patient of interest")
	}

	_, err = (&AddPatient{Patient: patient.New("BOB CHOO", "1234", "b@c.com", "x")}).Execute(m)
	var dup *book.DuplicatePatientError
	if !errors.As(err, &dup) {
		t.Errorf("expected DuplicatePatientError, got %v", err)
	}
}

func TestDeletePatientAndClear(t *testing.T) {
	m := modelWith(t, alice(), bob())
	if _, err := (&DeletePatient{Index: 0}).Execute(m); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(m.Patients()) != 1 || m.Patients()[0].Name != "Bob Choo" {
		t.Fatalf("wrong patient deleted")
	}
	res, _ := (&Clear{}).Execute(m)
	if len(m.Patients()) != 0 || len(res.Tracker.Removed) != 1 {
		t.Errorf("clear did not empty the book")
	}
}

func TestFind(t *testing.T) {
	m := modelWith(t, alice(), bob(), patient.New("Alicia Keys", "33333333", "ak@example.com", "x"))
	res, _ := (&Find{Keywords: []string{"alice", "CHOO"}}).Execute(m)
	if res.Feedback != "2 persons listed!" {
		t.Errorf("unexpected feedback %q", res.Feedback)
	}
	if _, err := (&List{}).Execute(m); err != nil {
		t.Fatal(err)
	}
	if len(m.FilteredPatients()) != 3 {
		t.Error("list should show everyone")
	}
}

func TestViewTaskAndPatientsToday(t *testing.T) {
	today := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	tasks, _ := patient.NewTaskList(patient.Task{Description: "Insulin", Due: today.Add(3 * time.Hour)})
	m := modelWith(t, alice(), bob().WithTasks(tasks))

	res, err := (&ViewTask{Index: 1}).Execute(m)
	if err != nil {
		t.Fatalf("viewTask: %v", err)
	}
	if res.Type != TypeTask || res.Mutated() {
		t.Errorf("unexpected result %+v", res)
	}
	if focus, _ := m.PatientOfInterest(); focus.Name != "Bob Choo" {
		t.Error("viewTask should focus on the patient")
	}

	(&PatientsToday{Today: today}).Execute(m)
	shown := m.FilteredPatients()
	if len(shown) != 1 || shown[0].Name != "Bob Choo" || m.ViewMode() != book.ViewToday {
		t.Errorf("patientsToday should show only Bob in the today view")
	}
}

func TestUndoRedoCommands(t *testing.T) {
	m := modelWith(t, alice())
	if _, err := (&Undo{}).Execute(m); !errors.Is(err, book.ErrNothingToUndo) {
		t.Fatalf("expected nothing to undo, got %v", err)
	}
	if _, err := NewAdd(Tags, 0, patient.Tag{Name: "ward1"}).Execute(m); err != nil {
		t.Fatal(err)
	}
	res, err := (&Undo{}).Execute(m)
	if err != nil || !res.Mutated() {
		t.Fatalf("undo: %v", err)
	}
	if !m.Patients()[0].Tags().IsEmpty() {
		t.Error("undo did not remove the tag")
	}
	if _, err := (&Redo{}).Execute(m); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if m.Patients()[0].Tags().Size() != 1 {
		t.Error("redo did not restore the tag")
	}
}

func TestExit(t *testing.T) {
	res, _ := (&Exit{}).Execute(nil)
	if !res.Exit {
		t.Error("exit should request exit")
	}
}
