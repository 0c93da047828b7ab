package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/hermes/internal/geocoding"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/observable"
	"github.com/UnknownOlympus/hermes/internal/places"
	"github.com/UnknownOlympus/hermes/internal/store"
)

// Messages placed in the error slot when an operation fails.
const (
	MsgAddFailed      = "Could not add the place. Please try again."
	MsgUpdateFailed   = "Could not update the place. Please try again."
	MsgDeleteFailed   = "Could not delete the place. Please try again."
	MsgFavoriteFailed = "Could not change the favorite. Please try again."
	MsgLocateFailed   = "Could not locate that address. Please try again."
)

var errLocate = errors.New("address lookup failed")

// State is the transient UI state owned by the coordinator.
type State struct {
	Selected      *models.Place      `json:"selected"`
	DialogVisible bool               `json:"dialogVisible"`
	MapCenter     models.Coordinates `json:"mapCenter"`
	ErrorMessage  string             `json:"errorMessage"`
	Query         string             `json:"query"`
	Category      string             `json:"category"`
}

// Coordinator holds the presentation state of the places map and keeps the
// derived views (filtered list and statistics) in step with the store.
// Mutations run as tasks bound to the coordinator's lifetime; Close cancels them.
type Coordinator struct {
	log          *slog.Logger       // Logger for coordinator activity
	store        store.Store        // Source of truth for the place collection
	geocoder     geocoding.Provider // Address lookup for AddPlaceAtAddress, may be nil
	providerName string             // Geocoding provider name for metrics labeling
	metrics      *metrics.Metrics   // Operation and statistics metrics

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
	places  []models.Place

	state      *observable.Value[State]
	filtered   *observable.Value[[]models.Place]
	statistics *observable.Value[models.PlaceStatistics]
}

// NewCoordinator creates a coordinator whose tasks live until ctx is done or Close is called.
// The map starts centered on center.
func NewCoordinator(
	ctx context.Context,
	log *slog.Logger,
	placeStore store.Store,
	geocoder geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	center models.Coordinates,
) *Coordinator {
	ctx, cancel := context.WithCancel(ctx)

	return &Coordinator{
		log:          log,
		store:        placeStore,
		geocoder:     geocoder,
		providerName: providerName,
		metrics:      metrics,
		ctx:          ctx,
		cancel:       cancel,
		state:        observable.NewValue(State{MapCenter: center}),
		filtered:     observable.NewValue([]models.Place{}),
		statistics:   observable.NewValue(places.Statistics(nil)),
	}
}

// Start subscribes to the store. The first list received seeds the defaults when it is empty.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.closed {
		return
	}
	c.started = true

	updates := c.store.Subscribe(c.ctx)
	c.tasks.Add(1)
	go c.consume(updates)
}

// Close cancels in-flight tasks and the store subscription, then waits for them to finish.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.tasks.Wait()
}

// State returns the observable UI state.
func (c *Coordinator) State() observable.Reader[State] {
	return c.state
}

// Places returns the observable filtered place list.
func (c *Coordinator) Places() observable.Reader[[]models.Place] {
	return c.filtered
}

// Statistics returns the observable statistics over the full place list.
func (c *Coordinator) Statistics() observable.Reader[models.PlaceStatistics] {
	return c.statistics
}

// Place looks placeID up in the latest list received from the store.
func (c *Coordinator) Place(placeID int64) (models.Place, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, place := range c.places {
		if place.ID == placeID {
			return place, true
		}
	}

	return models.Place{}, false
}

func (c *Coordinator) consume(updates <-chan []models.Place) {
	defer c.tasks.Done()

	first := true
	for list := range updates {
		if first {
			first = false
			if len(list) == 0 {
				c.log.InfoContext(c.ctx, "No places stored, inserting defaults")
				if err := c.store.SeedDefaults(c.ctx); err != nil && c.ctx.Err() == nil {
					c.log.ErrorContext(c.ctx, "Failed to insert default places", "error", err)
				}
			}
		}
		c.applyPlaces(list)
	}
}

func (c *Coordinator) applyPlaces(list []models.Place) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.places = list
	c.refilter()

	stats := places.Statistics(list)
	c.statistics.Set(stats)
	c.metrics.RecordStatistics(stats)
}

// refilter must be called with mu held.
func (c *Coordinator) refilter() {
	criteria := c.state.Get()
	c.filtered.Set(places.Filter(places.FilterByCategory(c.places, criteria.Category), criteria.Query))
}

// SetQuery changes the search text and recomputes the filtered list.
func (c *Coordinator) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Update(func(s State) State {
		s.Query = query
		return s
	})
	c.refilter()
}

// FilterByCategory restricts the filtered list to category. An empty category shows every place.
func (c *Coordinator) FilterByCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Update(func(s State) State {
		s.Category = category
		return s
	})
	c.refilter()
}

// ShowAddDialog opens the dialog for a new place at coords and centers the map there.
func (c *Coordinator) ShowAddDialog(coords models.Coordinates) {
	c.state.Update(func(s State) State {
		s.MapCenter = coords
		s.Selected = nil
		s.DialogVisible = true
		return s
	})
}

// ShowEditDialog opens the dialog to edit place.
func (c *Coordinator) ShowEditDialog(place models.Place) {
	c.state.Update(func(s State) State {
		s.Selected = &place
		s.DialogVisible = true
		return s
	})
}

// DismissDialog closes the dialog and clears the selection.
func (c *Coordinator) DismissDialog() {
	c.state.Update(func(s State) State {
		s.DialogVisible = false
		s.Selected = nil
		return s
	})
}

// FocusPlace centers the map on place, keeping map and card list in sync.
func (c *Coordinator) FocusPlace(place models.Place) {
	c.state.Update(func(s State) State {
		s.MapCenter = place.Coordinates
		return s
	})
}

// ClearError empties the error slot.
func (c *Coordinator) ClearError() {
	c.TakeError()
}

// TakeError returns the pending error message and clears it.
func (c *Coordinator) TakeError() string {
	var message string
	c.state.Update(func(s State) State {
		message = s.ErrorMessage
		s.ErrorMessage = ""
		return s
	})

	return message
}

// AddPlace stores a new place built from draft.
func (c *Coordinator) AddPlace(draft models.PlaceDraft) {
	c.launch("add", MsgAddFailed, func(ctx context.Context) error {
		_, err := c.store.Insert(ctx, draft.Place())
		return err
	}, closeDialog)
}

// AddPlaceAtAddress resolves address to coordinates and then stores the place built from draft.
func (c *Coordinator) AddPlaceAtAddress(draft models.PlaceDraft, address string) {
	c.launch("add", MsgAddFailed, func(ctx context.Context) error {
		coords, err := c.geocode(ctx, address)
		if err != nil {
			return err
		}
		draft.Coordinates = *coords

		_, err = c.store.Insert(ctx, draft.Place())
		return err
	}, closeDialog)
}

// UpdatePlace stores the edited place.
func (c *Coordinator) UpdatePlace(place models.Place) {
	c.launch("update", MsgUpdateFailed, func(ctx context.Context) error {
		return c.store.Update(ctx, place)
	}, closeDialog)
}

// DeletePlace removes place from the store.
func (c *Coordinator) DeletePlace(place models.Place) {
	c.launch("delete", MsgDeleteFailed, func(ctx context.Context) error {
		return c.store.Delete(ctx, place)
	}, nil)
}

// ToggleFavorite flips the favorite flag of place as last observed.
func (c *Coordinator) ToggleFavorite(place models.Place) {
	c.launch("toggle_favorite", MsgFavoriteFailed, func(ctx context.Context) error {
		return c.store.ToggleFavorite(ctx, place.ID, place.Favorite)
	}, nil)
}

func closeDialog(s *State) {
	s.DialogVisible = false
	s.Selected = nil
}

func (c *Coordinator) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if c.geocoder == nil {
		return nil, fmt.Errorf("%w: %w", errLocate, geocoding.ErrGeocodingDisabled)
	}

	startTime := time.Now()
	coords, err := c.geocoder.Geocode(ctx, address)
	c.metrics.GeocodeSeconds.WithLabelValues(c.providerName).Observe(time.Since(startTime).Seconds())
	if err != nil {
		c.metrics.GeocodeErrors.Inc()
		return nil, fmt.Errorf("%w: %w", errLocate, err)
	}

	return coords, nil
}

// launch runs call in its own task. The outcome is reported through the error
// slot; on success onSuccess may adjust the state as well.
func (c *Coordinator) launch(operation, failure string, call func(ctx context.Context) error, onSuccess func(*State)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.WarnContext(c.ctx, "Coordinator closed, operation dropped", "operation", operation)
		return
	}
	c.tasks.Add(1)
	c.mu.Unlock()

	c.metrics.ActiveTasks.Inc()
	go func() {
		defer c.tasks.Done()
		defer c.metrics.ActiveTasks.Dec()

		if err := call(c.ctx); err != nil {
			if c.ctx.Err() != nil {
				c.log.DebugContext(c.ctx, "Operation cancelled", "operation", operation, "error", err)
				return
			}

			message := failure
			if errors.Is(err, errLocate) {
				message = MsgLocateFailed
			}

			c.log.ErrorContext(c.ctx, "Place operation failed", "operation", operation, "error", err)
			c.metrics.PlaceOperations.WithLabelValues(operation, "failure").Inc()
			c.state.Update(func(s State) State {
				s.ErrorMessage = message
				return s
			})
			return
		}

		c.log.DebugContext(c.ctx, "Place operation succeeded", "operation", operation)
		c.metrics.PlaceOperations.WithLabelValues(operation, "success").Inc()
		c.state.Update(func(s State) State {
			s.ErrorMessage = ""
			if onSuccess != nil {
				onSuccess(&s)
			}
			return s
		})
	}()
}
