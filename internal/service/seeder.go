package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/moviegraph/moviegraph/internal/domain"
)

// SeedStore is the storage contract required by the seeder.
type SeedStore interface {
	SavePerson(ctx context.Context, person domain.Person) error
	SaveMovie(ctx context.Context, movie domain.Movie) error
	SaveRole(ctx context.Context, role domain.Role) (bool, error)
}

// TaskError accumulates multiple errors produced during seeding.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// SeedStats summarises a completed seeding run.
type SeedStats struct {
	People       int
	Movies       int
	Roles        int
	MissingRoles int
}

// Seeder loads a dataset into the graph using a bounded worker pool. Each
// entity is written in its own write transaction.
type Seeder struct {
	store   SeedStore
	workers int
	logger  *slog.Logger
}

// NewSeeder creates a Seeder with the provided concurrency.
func NewSeeder(store SeedStore, workers int, logger *slog.Logger) *Seeder {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		store:   store,
		workers: workers,
		logger:  logger,
	}
}

// Seed writes people, then movies, then ACTED_IN edges. Each phase completes
// before the next starts so edges always find both endpoints.
func (s *Seeder) Seed(ctx context.Context, dataset domain.Dataset) (SeedStats, error) {
	var stats SeedStats

	s.logger.Info("seeding people", "count", len(dataset.People), "workers", s.workers)
	if err := s.run(ctx, len(dataset.People), func(idx int) error {
		return s.store.SavePerson(ctx, dataset.People[idx])
	}); err != nil {
		return stats, err
	}
	stats.People = len(dataset.People)

	s.logger.Info("seeding movies", "count", len(dataset.Movies))
	if err := s.run(ctx, len(dataset.Movies), func(idx int) error {
		return s.store.SaveMovie(ctx, dataset.Movies[idx].Movie)
	}); err != nil {
		return stats, err
	}
	stats.Movies = len(dataset.Movies)

	roles := dataset.Roles()
	s.logger.Info("seeding roles", "count", len(roles))
	var (
		mu      sync.Mutex
		missing int
	)
	if err := s.run(ctx, len(roles), func(idx int) error {
		linked, err := s.store.SaveRole(ctx, roles[idx])
		if err != nil {
			return err
		}
		if !linked {
			s.logger.Warn("role endpoints not found", "actor", roles[idx].Actor, "title", roles[idx].Title)
			mu.Lock()
			missing++
			mu.Unlock()
		}
		return nil
	}); err != nil {
		return stats, err
	}
	stats.Roles = len(roles) - missing
	stats.MissingRoles = missing

	return stats, nil
}

func (s *Seeder) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				errCh <- err
			}
		}
	}

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go worker()
	}

	cancelled := false
Loop:
	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case indexCh <- i:
		case <-ctx.Done():
			cancelled = true
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if cancelled {
		return ctx.Err()
	}

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
