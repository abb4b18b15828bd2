// Package mutation runs one write against the API with the surrounding
// effects: client-side validation, form reset, list invalidation and the
// operator notification.
package mutation

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/notify"
	"github.com/karanch577/sneakerx-admin/prometheus"
	"go.uber.org/zap"
)

// ErrPending is returned when a write is already in flight on the mutation
var ErrPending = errors.New("mutation already in progress")

// Invalidator refetches the lists of the given resources
type Invalidator interface {
	Invalidate(ctx context.Context, resources ...string) error
}

// Config describes one write and its effects
type Config[In, Out any] struct {
	// Name labels logs and metrics, e.g. "category.create"
	Name string
	Do   func(ctx context.Context, in In) (Out, error)

	// Validate runs before the call. A failure aborts without a request.
	Validate func(in In) error
	// OnSuccess runs first on success, typically resetting the form
	OnSuccess func(out Out)
	// SuccessMessage builds the success notification. Empty means none.
	SuccessMessage func(out Out) string
	// ErrorMessage builds the failure notification. Defaults to the
	// server message with the generic fallback.
	ErrorMessage func(err error) string

	Invalidates []string
	Invalidator Invalidator
	Notifier    notify.Notifier
	Logger      *zap.Logger
}

// Mutation executes a configured write, one at a time
type Mutation[In, Out any] struct {
	cfg     Config[In, Out]
	pending atomic.Bool
}

// New builds a mutation
func New[In, Out any](cfg Config[In, Out]) *Mutation[In, Out] {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard
	}
	if cfg.ErrorMessage == nil {
		cfg.ErrorMessage = apiclient.Message
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.Logger = cfg.Logger.With(zap.String("mutation", cfg.Name))
	return &Mutation[In, Out]{cfg: cfg}
}

// Pending reports whether a write is in flight
func (m *Mutation[In, Out]) Pending() bool {
	return m.pending.Load()
}

// Execute validates in, performs the write and applies its effects. On
// success the order is: OnSuccess, invalidation, success notification. On
// failure a destructive notification carries the server message.
func (m *Mutation[In, Out]) Execute(ctx context.Context, in In) (Out, error) {
	var zero Out
	if !m.pending.CompareAndSwap(false, true) {
		return zero, ErrPending
	}
	defer m.pending.Store(false)

	log := m.cfg.Logger

	if m.cfg.Validate != nil {
		if err := m.cfg.Validate(in); err != nil {
			prometheus.RecordMutation(m.cfg.Name, "rejected")
			log.Info("Mutation rejected by validation", zap.Error(err))
			m.cfg.Notifier.Notify(notify.Failure(err.Error()))
			return zero, err
		}
	}

	out, err := m.cfg.Do(ctx, in)
	if err != nil {
		prometheus.RecordMutation(m.cfg.Name, "failure")
		log.Warn("Mutation failed", zap.Error(err))
		m.cfg.Notifier.Notify(notify.Failure(m.cfg.ErrorMessage(err)))
		return zero, err
	}

	if m.cfg.OnSuccess != nil {
		m.cfg.OnSuccess(out)
	}
	if m.cfg.Invalidator != nil && len(m.cfg.Invalidates) > 0 {
		if err := m.cfg.Invalidator.Invalidate(ctx, m.cfg.Invalidates...); err != nil {
			log.Warn("Invalidation after mutation failed", zap.Strings("resources", m.cfg.Invalidates), zap.Error(err))
		}
	}
	if m.cfg.SuccessMessage != nil {
		if msg := m.cfg.SuccessMessage(out); msg != "" {
			m.cfg.Notifier.Notify(notify.Success(msg))
		}
	}

	prometheus.RecordMutation(m.cfg.Name, "success")
	log.Info("Mutation succeeded")
	return out, nil
}
