// Package service implements create, read, list, update and delete for items,
// shipments and orders on top of a unit of work.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/dostava/internal/events"
	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/store"
)

// DefaultLimit is the page size when the caller doesn't ask for one.
const DefaultLimit = 100

// DefaultMaxLimit caps the page size when Config.MaxLimit is zero.
const DefaultMaxLimit = 1000

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Deleted confirms a removal.
type Deleted struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Config is shared by all services.
type Config struct {
	Publisher events.Publisher
	Logger    *zap.Logger
	// Upper bound on list page size.
	MaxLimit int
	// Clock; defaults to time.Now.
	Now func() time.Time
}

type core struct {
	publisher events.Publisher
	log       *zap.Logger
	maxLimit  int
	now       func() time.Time
	resource  string
}

func newCore(cfg Config, resource string) core {
	c := core{
		publisher: cfg.Publisher,
		log:       cfg.Logger,
		maxLimit:  cfg.MaxLimit,
		now:       cfg.Now,
		resource:  resource,
	}
	if c.publisher == nil {
		c.publisher = events.Nop{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.maxLimit <= 0 {
		c.maxLimit = DefaultMaxLimit
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// timestamp is the current time in UTC at the precision every backend keeps.
func (c core) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

// asStored normalizes a client-supplied time the way the store keeps it.
func asStored(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}

// touched returns a refreshed updated_at that never goes backwards.
func (c core) touched(previous time.Time) time.Time {
	now := c.timestamp()
	if now.Before(previous) {
		return previous
	}
	return now
}

func (c core) notFound() error {
	return &NotFoundError{Resource: c.resource}
}

// page validates skip/limit and caps limit.
func (c core) page(offset, limit int) (int, int, error) {
	if offset < 0 {
		return 0, 0, &model.ValidationError{Field: "skip", Value: offset, Reason: "must be greater than or equal to 0"}
	}
	if limit < 0 {
		return 0, 0, &model.ValidationError{Field: "limit", Value: limit, Reason: "must be greater than or equal to 0"}
	}
	if limit > c.maxLimit {
		limit = c.maxLimit
	}
	return offset, limit, nil
}

// published sends a change event for a committed mutation. Failures are
// logged, never returned.
func (c core) published(ctx context.Context, action string, id int64) {
	e := events.Event{Resource: strings.ToLower(c.resource), Action: action, ID: id, At: c.timestamp()}
	if err := c.publisher.Publish(ctx, e); err != nil {
		c.log.Warn("publishing change event failed",
			zap.String("resource", e.Resource),
			zap.String("action", action),
			zap.Int64("id", id),
			zap.Error(err),
		)
	}
}

// commit commits u and logs the mutation.
func (c core) commit(u *store.UnitOfWork, action string, id int64) error {
	if err := u.Commit(); err != nil {
		return err
	}
	c.log.Info(strings.ToLower(c.resource)+" "+action, zap.Int64("id", id))
	return nil
}
