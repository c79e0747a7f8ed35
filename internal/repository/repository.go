// Package repository implements the activity data-access layer on top of a single
// key-value entry.
//
// Every operation loads the full collection, changes it and writes it back. Operations
// on unknown ids (or out-of-range participant positions) change nothing and report
// false with a nil error; only storage failures produce errors.
//
// A Repository serializes its own read-modify-write cycles. Two processes sharing the
// same backend are not coordinated: the last write wins.
package repository

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"activities/internal/metrics"
	"activities/internal/models"
)

// Recorder receives instrumentation events.
type Recorder interface {
	ObserveOperation(operation, result string)
	SetStored(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string) {}
func (nopRecorder) SetStored(int)                   {}

// Repository mediates all reads and writes of the activity collection.
type Repository struct {
	collection *Collection
	newID      func() string
	recorder   Recorder
	logger     *slog.Logger

	mu sync.Mutex
}

// Option customizes a Repository.
type Option func(*Repository)

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithRecorder attaches instrumentation.
func WithRecorder(rec Recorder) Option {
	return func(r *Repository) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New builds a repository over the given collection.
func New(collection *Collection, opts ...Option) *Repository {
	r := &Repository{
		collection: collection,
		newID:      newTimeOrderedID,
		recorder:   nopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newTimeOrderedID returns a UUIDv7, whose leading bits are the creation time in
// milliseconds.
func newTimeOrderedID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// AddActivity stores a new activity built from form and returns it.
func (r *Repository) AddActivity(ctx context.Context, form models.ActivityForm) (models.Activity, error) {
	var created models.Activity
	_, err := r.mutate(ctx, "add_activity", func(activities []models.Activity) ([]models.Activity, bool) {
		created = models.Activity{
			ID:            r.newID(),
			Nome:          form.Nome,
			Responsavel:   form.Responsavel,
			Data:          form.Data,
			Descricao:     form.Descricao,
			Participantes: []string{},
		}
		return append(activities, created), true
	})
	if err != nil {
		return models.Activity{}, err
	}
	r.logger.Debug("activity created", slog.String("id", created.ID))
	return created.Clone(), nil
}

// GetActivities returns the full collection in storage order.
func (r *Repository) GetActivities(ctx context.Context) ([]models.Activity, error) {
	activities, err := r.load(ctx, "get_activities")
	if err != nil {
		return nil, err
	}
	r.recorder.ObserveOperation("get_activities", metrics.ResultOK)
	return activities, nil
}

// GetActivityByID returns the first activity with the given id.
func (r *Repository) GetActivityByID(ctx context.Context, id string) (models.Activity, bool, error) {
	activities, err := r.load(ctx, "get_activity")
	if err != nil {
		return models.Activity{}, false, err
	}
	r.recorder.ObserveOperation("get_activity", metrics.ResultOK)

	i := indexOf(activities, id)
	if i < 0 {
		return models.Activity{}, false, nil
	}
	return activities[i], true, nil
}

// UpdateActivity replaces the editable fields of the matching activity, keeping its
// id and participants. It reports false when no activity has the id.
func (r *Repository) UpdateActivity(ctx context.Context, id string, form models.ActivityForm) (bool, error) {
	return r.mutate(ctx, "update_activity", func(activities []models.Activity) ([]models.Activity, bool) {
		i := indexOf(activities, id)
		if i < 0 {
			return activities, false
		}
		a := &activities[i]
		a.Nome = form.Nome
		a.Responsavel = form.Responsavel
		a.Data = form.Data
		a.Descricao = form.Descricao
		return activities, true
	})
}

// RemoveActivity deletes the activity with the given id.
func (r *Repository) RemoveActivity(ctx context.Context, id string) (bool, error) {
	return r.mutate(ctx, "remove_activity", func(activities []models.Activity) ([]models.Activity, bool) {
		kept := activities[:0]
		for _, a := range activities {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		return kept, len(kept) != len(activities)
	})
}

// AddParticipant appends name to the roster of the matching activity. Duplicates are kept.
func (r *Repository) AddParticipant(ctx context.Context, id, name string) (bool, error) {
	return r.mutate(ctx, "add_participant", func(activities []models.Activity) ([]models.Activity, bool) {
		i := indexOf(activities, id)
		if i < 0 {
			return activities, false
		}
		activities[i].Participantes = append(activities[i].Participantes, name)
		return activities, true
	})
}

// RemoveParticipant removes the roster entry at index. Unknown ids and positions
// outside the roster leave the collection untouched.
func (r *Repository) RemoveParticipant(ctx context.Context, id string, index int) (bool, error) {
	return r.mutate(ctx, "remove_participant", func(activities []models.Activity) ([]models.Activity, bool) {
		i := indexOf(activities, id)
		if i < 0 {
			return activities, false
		}
		roster := activities[i].Participantes
		if index < 0 || index >= len(roster) {
			return activities, false
		}
		activities[i].Participantes = append(roster[:index:index], roster[index+1:]...)
		return activities, true
	})
}

func (r *Repository) load(ctx context.Context, operation string) ([]models.Activity, error) {
	activities, err := r.collection.Load(ctx)
	if err != nil {
		r.recorder.ObserveOperation(operation, metrics.ResultError)
		return nil, err
	}
	r.recorder.SetStored(len(activities))
	return activities, nil
}

// mutate runs one locked load, change, save cycle. The collection is only written
// when fn reports a change.
func (r *Repository) mutate(ctx context.Context, operation string, fn func([]models.Activity) ([]models.Activity, bool)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activities, err := r.load(ctx, operation)
	if err != nil {
		return false, err
	}

	updated, changed := fn(activities)
	if !changed {
		r.recorder.ObserveOperation(operation, metrics.ResultNoop)
		return false, nil
	}

	if err := r.collection.Save(ctx, updated); err != nil {
		r.recorder.ObserveOperation(operation, metrics.ResultError)
		return false, err
	}
	r.recorder.SetStored(len(updated))
	r.recorder.ObserveOperation(operation, metrics.ResultChanged)
	return true, nil
}

func indexOf(activities []models.Activity, id string) int {
	for i := range activities {
		if activities[i].ID == id {
			return i
		}
	}
	return -1
}
