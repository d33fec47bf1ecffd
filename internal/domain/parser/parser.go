// Package parser turns a nurse's command line into a command.Command.
// Patient and item indices are typed 1-based and handed to commands 0-based.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uninurse/uninurse/internal/domain/attribute"
	"github.com/uninurse/uninurse/internal/domain/command"
	"github.com/uninurse/uninurse/internal/domain/patient"
)

type parseFunc func(args string) (command.Command, error)

type entry struct {
	word  string
	usage string
	parse parseFunc
}

// Parser is safe for concurrent use once built.
type Parser struct {
	now     func() time.Time
	entries []entry
	byWord  map[string]entry
}

// New builds a parser. now supplies the clock for date-relative commands and
// the location task due dates are read in; nil means time.Now.
func New(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	p := &Parser{now: now, byWord: make(map[string]entry)}

	p.register("add", usageAdd, p.parseAddPatient)
	p.register("delete", usageDelete, p.parseDeletePatient)
	p.register("clear", usageClear, constant(&command.Clear{}))
	p.register("list", usageList, constant(&command.List{}))
	p.register("find", usageFind, p.parseFind)

	registerAttribute(p, command.Tasks, func(s string) (patient.Task, error) {
		return parseTask(s, p.now().Location())
	})
	registerAttribute(p, command.Conditions, patient.NewCondition)
	registerAttribute(p, command.Medications, parseMedication)
	registerAttribute(p, command.Remarks, patient.NewRemark)
	registerAttribute(p, command.Tags, patient.NewTag)

	p.register("viewTask", usageViewTask, p.parseViewTask)
	p.register("patientsToday", usagePatientsToday, func(string) (command.Command, error) {
		return &command.PatientsToday{Today: p.now()}, nil
	})
	p.register("undo", usageUndo, constant(&command.Undo{}))
	p.register("redo", usageRedo, constant(&command.Redo{}))
	p.register("help", usageHelp, func(string) (command.Command, error) {
		return &command.Help{Summary: p.Summary()}, nil
	})
	p.register("exit", usageExit, constant(&command.Exit{}))
	return p
}

// Parse reads one command line.
func (p *Parser) Parse(input string) (command.Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &MalformedCommandError{Usage: usageHelp}
	}
	word, args, _ := strings.Cut(input, " ")
	e, ok := p.byWord[word]
	if !ok {
		return nil, &UnknownCommandError{Word: word}
	}
	return e.parse(strings.TrimSpace(args))
}

// Usage returns the usage text for a command word.
func (p *Parser) Usage(word string) (string, bool) {
	e, ok := p.byWord[word]
	return e.usage, ok
}

// Words lists the command words in help order.
func (p *Parser) Words() []string {
	words := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		words = append(words, e.word)
	}
	return words
}

// Summary is the first line of every usage text.
func (p *Parser) Summary() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, e := range p.entries {
		first, _, _ := strings.Cut(e.usage, "\n")
		b.WriteString("\n  ")
		b.WriteString(first)
	}
	return b.String()
}

func (p *Parser) register(word, usage string, parse parseFunc) {
	e := entry{word: word, usage: usage, parse: parse}
	p.entries = append(p.entries, e)
	p.byWord[word] = e
}

func constant(c command.Command) parseFunc {
	return func(string) (command.Command, error) { return c, nil }
}

// registerAttribute wires the add, edit, delete and list words for one kind.
func registerAttribute[T attribute.Item[T]](p *Parser, b command.Binding[T], item func(string) (T, error)) {
	k := b.Kind
	s := syntaxes[k]
	title := titleKind(k)

	add := addUsage(k)
	p.register("add"+title, add, func(args string) (command.Command, error) {
		a := tokenize(args, s.prefix)
		idx, err := parseIndices(a.preamble, 1, add)
		if err != nil {
			return nil, err
		}
		raw, ok := a.value(s.prefix)
		if !ok || raw == "" {
			return nil, &MalformedCommandError{Usage: add}
		}
		v, err := parseItem(item, raw, add)
		if err != nil {
			return nil, err
		}
		return command.NewAdd(b, idx[0], v), nil
	})

	edit := editUsage(k)
	p.register("edit"+title, edit, func(args string) (command.Command, error) {
		a := tokenize(args, s.prefix)
		idx, err := parseIndices(a.preamble, 2, edit)
		if err != nil {
			return nil, err
		}
		raw, ok := a.value(s.prefix)
		if !ok {
			return nil, &InvalidValueError{Err: fmt.Errorf("%s to edit must be provided.", title)}
		}
		if raw == "" {
			return nil, &MalformedCommandError{Usage: edit}
		}
		v, err := parseItem(item, raw, edit)
		if err != nil {
			return nil, err
		}
		return command.NewEdit(b, idx[0], idx[1], v), nil
	})

	del := deleteUsage(k)
	p.register("delete"+title, del, func(args string) (command.Command, error) {
		idx, err := parseIndices(args, 2, del)
		if err != nil {
			return nil, err
		}
		return command.NewDelete(b, idx[0], idx[1]), nil
	})

	p.register("list"+title, listUsage(k), constant(command.NewList(b)))
}

// parseItem runs an item constructor. Missing halves of a two-part payload are
// a format problem; any other failure is a constraint on the value.
func parseItem[T any](item func(string) (T, error), raw, usage string) (T, error) {
	v, err := item(raw)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, patient.ErrInvalidMedication) {
		return v, &MalformedCommandError{Usage: usage, Err: err}
	}
	return v, &InvalidValueError{Err: err}
}

// parseIndices reads exactly n whitespace-separated 1-based indices.
func parseIndices(s string, n int, usage string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, &MalformedCommandError{Usage: usage}
	}
	out := make([]int, n)
	for i, f := range fields {
		idx, err := parseIndex(f)
		if err != nil {
			return nil, &MalformedCommandError{Usage: usage, Err: err}
		}
		out[i] = idx
	}
	return out, nil
}

func (p *Parser) parseDeletePatient(args string) (command.Command, error) {
	idx, err := parseIndices(args, 1, usageDelete)
	if err != nil {
		return nil, err
	}
	return &command.DeletePatient{Index: idx[0]}, nil
}

func (p *Parser) parseViewTask(args string) (command.Command, error) {
	idx, err := parseIndices(args, 1, usageViewTask)
	if err != nil {
		return nil, err
	}
	return &command.ViewTask{Index: idx[0]}, nil
}

func (p *Parser) parseFind(args string) (command.Command, error) {
	keywords := strings.Fields(args)
	if len(keywords) == 0 {
		return nil, &MalformedCommandError{Usage: usageFind}
	}
	return &command.Find{Keywords: keywords}, nil
}

func (p *Parser) parseAddPatient(args string) (command.Command, error) {
	a := tokenize(args,
		PrefixName, PrefixPhone, PrefixEmail, PrefixAddress,
		PrefixTag, PrefixCondition, PrefixMedication, PrefixRemark, PrefixTask)
	if a.preamble != "" {
		return nil, &MalformedCommandError{Usage: usageAdd}
	}
	name, okName := a.value(PrefixName)
	phone, okPhone := a.value(PrefixPhone)
	email, okEmail := a.value(PrefixEmail)
	address, okAddress := a.value(PrefixAddress)
	if !okName || !okPhone || !okEmail || !okAddress {
		return nil, &MalformedCommandError{Usage: usageAdd}
	}

	for _, check := range []struct {
		fn    func(string) error
		value string
	}{
		{patient.ValidateName, name},
		{patient.ValidatePhone, phone},
		{patient.ValidateEmail, email},
		{patient.ValidateAddress, address},
	} {
		if err := check.fn(check.value); err != nil {
			return nil, &InvalidValueError{Err: err}
		}
	}

	p0 := patient.New(name, phone, email, address)
	var err error
	if p0, err = fillList(p0, a.all(PrefixTag), patient.NewTag, patient.Patient.Tags, patient.Patient.WithTags); err != nil {
		return nil, err
	}
	if p0, err = fillList(p0, a.all(PrefixCondition), patient.NewCondition, patient.Patient.Conditions, patient.Patient.WithConditions); err != nil {
		return nil, err
	}
	if p0, err = fillList(p0, a.all(PrefixMedication), parseMedication, patient.Patient.Medications, patient.Patient.WithMedications); err != nil {
		return nil, err
	}
	if p0, err = fillList(p0, a.all(PrefixRemark), patient.NewRemark, patient.Patient.Remarks, patient.Patient.WithRemarks); err != nil {
		return nil, err
	}
	loc := p.now().Location()
	parseTaskIn := func(s string) (patient.Task, error) { return parseTask(s, loc) }
	if p0, err = fillList(p0, a.all(PrefixTask), parseTaskIn, patient.Patient.Tasks, patient.Patient.WithTasks); err != nil {
		return nil, err
	}
	return &command.AddPatient{Patient: p0}, nil
}

// fillList parses raw values into the patient's list of one kind. Repeated
// values are rejected the same way an add command would reject them.
func fillList[T attribute.Item[T]](
	p patient.Patient,
	raws []string,
	item func(string) (T, error),
	get func(patient.Patient) attribute.List[T],
	with func(patient.Patient, attribute.List[T]) patient.Patient,
) (patient.Patient, error) {
	list := get(p)
	for _, raw := range raws {
		v, err := parseItem(item, raw, usageAdd)
		if err != nil {
			return p, err
		}
		if list, err = list.Add(v); err != nil {
			return p, &InvalidValueError{Err: err}
		}
	}
	return with(p, list), nil
}
