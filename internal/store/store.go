// Package store exposes the place collection as an observable sequence of full snapshots.
package store

import (
	"context"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// Store is the durable place collection seen by the presentation layer.
// Subscribe emits the current full list and every list published after a change.
type Store interface {
	Subscribe(ctx context.Context) <-chan []models.Place
	Insert(ctx context.Context, place models.Place) (models.Place, error)
	Update(ctx context.Context, place models.Place) error
	Delete(ctx context.Context, place models.Place) error
	ToggleFavorite(ctx context.Context, placeID int64, current bool) error
	SeedDefaults(ctx context.Context) error
}
