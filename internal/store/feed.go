package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/observable"
	"github.com/UnknownOlympus/hermes/internal/repository"
)

// Feed implements Store on top of the repository. Every successful mutation is
// followed by a reload of the full list, which is then published to subscribers.
type Feed struct {
	log          *slog.Logger         // Logger for store activity
	repo         repository.Interface // Durable place storage
	metrics      *metrics.Metrics     // Store latency metrics
	pollInterval time.Duration        // Interval for picking up changes made elsewhere
	places       *observable.Value[[]models.Place]
}

// NewFeed creates a Feed. Nothing is published until the first Refresh.
func NewFeed(log *slog.Logger, repo repository.Interface, metrics *metrics.Metrics, pollInterval time.Duration) *Feed {
	return &Feed{
		log:          log,
		repo:         repo,
		metrics:      metrics,
		pollInterval: pollInterval,
		places:       observable.NewEmpty[[]models.Place](),
	}
}

// Run loads the collection once and then reloads it on every tick until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) {
	f.log.InfoContext(ctx, "Place feed started...")

	if err := f.Refresh(ctx); err != nil {
		f.log.ErrorContext(ctx, "Initial place load failed", "error", err)
	}

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.log.InfoContext(ctx, "Place feed stopped.")
			return
		case <-ticker.C:
			if err := f.Refresh(ctx); err != nil {
				f.log.ErrorContext(ctx, "Failed to refresh places", "error", err)
			}
		}
	}
}

// Refresh reloads the full list from the repository and publishes it.
func (f *Feed) Refresh(ctx context.Context) error {
	var list []models.Place
	err := f.observe("fetch", func() error {
		var errFetch error
		list, errFetch = f.repo.FetchPlaces(ctx)
		return errFetch
	})
	if err != nil {
		return fmt.Errorf("failed to refresh places: %w", err)
	}

	f.places.Set(list)

	return nil
}

// Snapshot returns the last published list.
func (f *Feed) Snapshot() []models.Place {
	return f.places.Get()
}

// Subscribe returns a channel carrying the current list, once loaded, and every list published after it.
// The channel is closed when ctx is done.
func (f *Feed) Subscribe(ctx context.Context) <-chan []models.Place {
	return f.places.Subscribe(ctx)
}

// Insert stores place and publishes the reloaded list. The returned place carries the
// identifier and creation time assigned by the repository.
func (f *Feed) Insert(ctx context.Context, place models.Place) (models.Place, error) {
	var inserted models.Place
	err := f.observe("insert", func() error {
		var errInsert error
		inserted, errInsert = f.repo.InsertPlace(ctx, place)
		return errInsert
	})
	if err != nil {
		return models.Place{}, err
	}

	f.log.InfoContext(ctx, "Place added", "ID", inserted.ID, "name", inserted.Name)
	f.publish(ctx)

	return inserted, nil
}

// Update overwrites the stored place with the same ID and publishes the reloaded list.
func (f *Feed) Update(ctx context.Context, place models.Place) error {
	if err := f.observe("update", func() error { return f.repo.UpdatePlace(ctx, place) }); err != nil {
		return err
	}

	f.log.InfoContext(ctx, "Place updated", "ID", place.ID)
	f.publish(ctx)

	return nil
}

// Delete removes place by its ID and publishes the reloaded list.
func (f *Feed) Delete(ctx context.Context, place models.Place) error {
	if err := f.observe("delete", func() error { return f.repo.DeletePlace(ctx, place.ID) }); err != nil {
		return err
	}

	f.log.InfoContext(ctx, "Place deleted", "ID", place.ID)
	f.publish(ctx)

	return nil
}

// ToggleFavorite stores the negation of current as the favorite flag of placeID and
// publishes the reloaded list.
func (f *Feed) ToggleFavorite(ctx context.Context, placeID int64, current bool) error {
	err := f.observe("toggle_favorite", func() error { return f.repo.ToggleFavorite(ctx, placeID, current) })
	if err != nil {
		return err
	}

	f.log.DebugContext(ctx, "Favorite toggled", "ID", placeID, "favorite", !current)
	f.publish(ctx)

	return nil
}

// SeedDefaults inserts the built-in places when the collection is empty.
func (f *Feed) SeedDefaults(ctx context.Context) error {
	var inserted int
	err := f.observe("seed", func() error {
		var errSeed error
		inserted, errSeed = f.repo.InsertDefaultPlaces(ctx)
		return errSeed
	})
	if err != nil {
		return err
	}

	if inserted > 0 {
		f.publish(ctx)
	}

	return nil
}

// publish reloads after a committed mutation. A failed reload does not fail the
// mutation; the next poll catches up.
func (f *Feed) publish(ctx context.Context) {
	if err := f.Refresh(ctx); err != nil {
		f.log.WarnContext(ctx, "Mutation stored but reload failed", "error", err)
	}
}

func (f *Feed) observe(operation string, call func() error) error {
	startTime := time.Now()
	err := call()
	f.metrics.StoreSeconds.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())

	return err
}
