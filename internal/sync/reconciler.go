// Package sync reconciles the local task collection with the cloud record
// store: last-write-wins by update timestamp, set-union by identifier.
package sync

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"focusdo/internal/model"
	"focusdo/internal/remote"
	"focusdo/internal/store"
)

// Reconciler runs the periodic merge between a Store and the remote
// record store.
type Reconciler struct {
	store    *store.Store
	remote   remote.Store
	log      zerolog.Logger
	timeout  time.Duration
	inFlight atomic.Bool
}

func NewReconciler(s *store.Store, r remote.Store, timeout time.Duration, log zerolog.Logger) *Reconciler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Reconciler{
		store:   s,
		remote:  r,
		log:     log.With().Str("component", "sync").Logger(),
		timeout: timeout,
	}
}

// Tick is the scheduler entry point. While a pass is in flight new ticks
// are skipped, not queued.
func (r *Reconciler) Tick() {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.log.Debug().Msg("reconciliation already in flight, tick skipped")
		return
	}
	defer r.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.Run(ctx); err != nil {
		r.log.Warn().Err(err).Msg("reconciliation pass failed")
	}
}

// Run executes one reconciliation pass. A failed fetch leaves local state
// untouched; the next tick retries on schedule.
func (r *Reconciler) Run(ctx context.Context) error {
	remoteTasks, err := r.remote.FetchAll(ctx)
	if err != nil {
		return err
	}

	categories := r.reconcileCategories(ctx)

	local := r.store.Tasks()
	_, localOnly := Merge(local, remoteTasks)

	uploaded := 0
	for _, t := range localOnly {
		if err := r.remote.Save(ctx, t); err != nil {
			// Not retried this cycle; the record stays local-only and is
			// re-evaluated on the next pass.
			r.log.Warn().Err(err).Str("task_id", t.ID).Msg("upload failed")
			continue
		}
		uploaded++
	}

	// Mutations can land while the uploads run; merge against a fresh
	// snapshot so the swap does not reinstall stale records.
	merged, _ := Merge(r.store.Tasks(), remoteTasks)
	ResolveCategories(merged, categories)

	changed := r.store.ReplaceAll(merged)
	r.log.Info().
		Int("remote", len(remoteTasks)).
		Int("local", len(local)).
		Int("merged", len(merged)).
		Int("uploaded", uploaded).
		Bool("changed", changed).
		Msg("reconciliation pass complete")
	return nil
}

// reconcileCategories unions the category lists and pushes local-only
// entries upward. A failed fetch keeps the local list for this pass.
func (r *Reconciler) reconcileCategories(ctx context.Context) []model.Category {
	local := r.store.Categories()
	remoteCategories, err := r.remote.FetchCategories(ctx)
	if err != nil {
		r.log.Debug().Err(err).Msg("category fetch failed, using local list")
		return local
	}

	merged, localOnly := MergeCategories(local, remoteCategories)
	for _, c := range localOnly {
		if err := r.remote.SaveCategory(ctx, c); err != nil {
			r.log.Warn().Err(err).Str("category_id", c.ID).Msg("category upload failed")
		}
	}
	r.store.ReplaceCategories(merged)
	return merged
}
