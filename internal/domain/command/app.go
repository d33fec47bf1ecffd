package command

import "github.com/uninurse/uninurse/internal/domain/book"

// Help shows the command summary it was built with.
type Help struct {
	Summary string
}

func (c *Help) Execute(*book.Model) (Result, error) {
	return Result{Feedback: c.Summary, Type: TypeHelp}, nil
}

type Exit struct{}

func (c *Exit) Execute(*book.Model) (Result, error) {
	return Result{Feedback: "Exiting UniNurse as requested ...", Type: TypeExit, Exit: true}, nil
}
