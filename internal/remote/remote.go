// Package remote talks to the cloud record store. Records cross the wire
// as loosely-typed field bags; the codec in this package is the single
// typed boundary, so nothing outside it touches untyped fields.
package remote

import (
	"context"
	"time"

	"focusdo/internal/model"
)

// Record is the wire form of one stored object.
type Record map[string]any

// Store is the consumer-side contract with the cloud record store. All
// calls are best-effort; callers treat failures as retry-later, never
// fatal.
type Store interface {
	FetchAll(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, t model.Task) error
	Delete(ctx context.Context, t model.Task) error

	FetchCategories(ctx context.Context) ([]model.Category, error)
	SaveCategory(ctx context.Context, c model.Category) error
	DeleteCategory(ctx context.Context, c model.Category) error

	FetchDailyStat(ctx context.Context, day time.Time) (int, error)
	SaveDailyStat(ctx context.Context, day time.Time, count int) error
	FetchFocusStat(ctx context.Context, day time.Time) (int, error)
	SaveFocusStat(ctx context.Context, day time.Time, minutes int) error
}
