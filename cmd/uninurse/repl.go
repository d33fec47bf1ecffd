package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/uninurse/uninurse/internal/domain/session"
)

const welcome = "Welcome to UniNurse! Type help to see the commands, exit to leave."

// maxLineBytes bounds one command line. Longer lines are skipped whole.
const maxLineBytes = 1 << 20

var errLineTooLong = fmt.Errorf("Command is too long (over %d bytes) and was ignored", maxLineBytes)

// runREPL reads one command per line until exit or end of input. Rejected
// commands print their message and the loop carries on.
func runREPL(ctx context.Context, svc *session.Service, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, welcome)
	if err := session.Render(out, svc.Snapshot()); err != nil {
		return err
	}

	r := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(r)
		if errors.Is(err, errLineTooLong) {
			fmt.Fprintln(out, err.Error())
			continue
		}
		if err != nil {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		res, err := svc.Execute(ctx, line)
		var saveErr *session.SaveError
		if err != nil && !errors.As(err, &saveErr) {
			fmt.Fprintln(out, err.Error())
			continue
		}
		fmt.Fprintln(out, res.Feedback)
		if saveErr != nil {
			fmt.Fprintln(out, saveErr.Error())
		}
		if res.Exit {
			return nil
		}
		if err := session.Render(out, svc.Snapshot()); err != nil {
			return err
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is drained and reported as errLineTooLong. A final line with
// no newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				break
			}
			return "", err
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineBytes {
				tooLong = true
				buf = nil
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}
