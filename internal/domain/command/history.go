package command

import "github.com/uninurse/uninurse/internal/domain/book"

type Undo struct{}

func (c *Undo) Execute(m *book.Model) (Result, error) {
	tracker, err := m.Undo()
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: "Undo successful!", Type: TypeUndo, Tracker: tracker}, nil
}

type Redo struct{}

func (c *Redo) Execute(m *book.Model) (Result, error) {
	tracker, err := m.Redo()
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: "Redo successful!", Type: TypeRedo, Tracker: tracker}, nil
}
