// Package session fronts the patient book for the REPL and the HTTP view
// server: one command at a time, persisted after every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/uninurse/uninurse/internal/domain/book"
	"github.com/uninurse/uninurse/internal/domain/command"
	"github.com/uninurse/uninurse/internal/domain/parser"
	"github.com/uninurse/uninurse/internal/domain/patient"
	"github.com/uninurse/uninurse/internal/platform/metrics"
	"github.com/uninurse/uninurse/internal/platform/storage"
)

// SaveError reports that a command took effect in memory but the book could
// not be written. The change is kept; the next successful save catches up.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("Could not save the patient book: %v", e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

type Options struct {
	HistoryLimit int
	// Driver labels save metrics; defaults to "unknown".
	Driver  string
	Now     func() time.Time
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

type Service struct {
	mu      sync.Mutex
	model   *book.Model
	parser  *parser.Parser
	repo    storage.Repository
	driver  string
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// Open loads the book from repo. A repository that has never been written
// to is seeded with sample patients, which are saved right away; a saved
// empty book stays empty.
func Open(ctx context.Context, repo storage.Repository, opts Options) (*Service, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	driver := opts.Driver
	if driver == "" {
		driver = "unknown"
	}
	s := &Service{
		parser:  parser.New(now),
		repo:    repo,
		driver:  driver,
		metrics: opts.Metrics,
		logger:  opts.Logger.With().Str("component", "session").Logger(),
	}

	patients, err := repo.Load(ctx)
	seeded := false
	if errors.Is(err, storage.ErrNotFound) {
		patients = patient.SamplePatients(now())
		seeded = true
	} else if err != nil {
		return nil, fmt.Errorf("load patient book: %w", err)
	}

	model, err := book.NewModel(patients, opts.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load patient book: %w", err)
	}
	s.model = model

	if seeded {
		if err := s.save(ctx); err != nil {
			return nil, fmt.Errorf("seed patient book: %w", err)
		}
		s.logger.Info().Int("patients", len(patients)).Msg("seeded sample patients")
	} else {
		s.logger.Info().Int("patients", len(patients)).Msg("patient book loaded")
	}
	s.metrics.SetPatients(len(patients))
	return s, nil
}

// Execute parses and runs one command line. User mistakes come back as the
// parser's or command's typed errors with no change made. A *SaveError comes
// with a valid Result: the command took effect but was not persisted.
func (s *Service) Execute(ctx context.Context, input string) (command.Result, error) {
	start := time.Now()
	word := commandWord(input)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The caller may have given up while waiting for the lock.
	if err := ctx.Err(); err != nil {
		s.logger.Warn().
			Err(err).
			Str("command", word).
			Dur("waited", time.Since(start)).
			Msg("command abandoned before it ran")
		return command.Result{}, fmt.Errorf("command not applied: %w", err)
	}

	res, err := s.run(input)
	if err != nil {
		label := word
		var unknown *parser.UnknownCommandError
		if errors.As(err, &unknown) {
			// Keep typos out of the metric label set.
			label = ""
		}
		s.observe(label, metrics.OutcomeRejected, start)
		s.logger.Info().
			Str("command", word).
			Str("outcome", metrics.OutcomeRejected).
			Dur("latency", time.Since(start)).
			Str("error", err.Error()).
			Msg("command rejected")
		return command.Result{}, err
	}

	if res.Mutated() {
		if err := s.save(ctx); err != nil {
			s.observe(word, metrics.OutcomeFailed, start)
			s.logger.Error().
				Err(err).
				Str("command", word).
				Str("outcome", metrics.OutcomeFailed).
				Msg("failed to save patient book")
			return res, &SaveError{Err: err}
		}
		s.metrics.SetPatients(len(s.model.Patients()))
	}

	s.observe(word, metrics.OutcomeOK, start)
	s.logger.Debug().
		Str("command", word).
		Str("outcome", metrics.OutcomeOK).
		Dur("latency", time.Since(start)).
		Int("patients", len(s.model.Patients())).
		Bool("mutated", res.Mutated()).
		Msg("command executed")
	return res, nil
}

func (s *Service) run(input string) (command.Result, error) {
	cmd, err := s.parser.Parse(input)
	if err != nil {
		return command.Result{}, err
	}
	return cmd.Execute(s.model)
}

func (s *Service) save(ctx context.Context) error {
	err := s.repo.Save(ctx, s.model.Patients())
	s.metrics.ObserveSave(s.driver, err)
	return err
}

func (s *Service) observe(word, outcome string, start time.Time) {
	s.metrics.ObserveCommand(word, outcome, time.Since(start))
}

// Snapshot copies the current view state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		View:     s.model.ViewMode(),
		Patients: s.model.FilteredPatients(),
		Total:    len(s.model.Patients()),
		CanUndo:  s.model.CanUndo(),
		CanRedo:  s.model.CanRedo(),
	}
	if p, ok := s.model.PatientOfInterest(); ok {
		snap.Focus = &p
	}
	return snap
}

func commandWord(input string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(input), " ")
	return word
}
