// Package api exposes the place coordinator over HTTP as a small JSON API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/observable"
	"github.com/UnknownOlympus/hermes/internal/service"
	"github.com/gorilla/handlers"
)

const maxBodyBytes = 1 << 20

var (
	errMissingName     = errors.New("name is required")
	errMissingLocation = errors.New("either coordinates or address is required")
	errDialogRequest   = errors.New("either id or lat and lng are required")
)

// Coordinator is the presentation state the handlers read and drive.
type Coordinator interface {
	State() observable.Reader[service.State]
	Places() observable.Reader[[]models.Place]
	Statistics() observable.Reader[models.PlaceStatistics]
	Place(placeID int64) (models.Place, bool)

	SetQuery(query string)
	FilterByCategory(category string)
	ShowAddDialog(coords models.Coordinates)
	ShowEditDialog(place models.Place)
	DismissDialog()
	FocusPlace(place models.Place)
	ClearError()
	TakeError() string

	AddPlace(draft models.PlaceDraft)
	AddPlaceAtAddress(draft models.PlaceDraft, address string)
	UpdatePlace(place models.Place)
	DeletePlace(place models.Place)
	ToggleFavorite(place models.Place)
}

// Handler serves the places API.
type Handler struct {
	log   *slog.Logger
	coord Coordinator
}

// NewHandler creates a Handler backed by coord.
func NewHandler(log *slog.Logger, coord Coordinator) *Handler {
	return &Handler{log: log, coord: coord}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/places", h.listPlaces)
	mux.HandleFunc("POST /api/places", h.addPlace)
	mux.HandleFunc("GET /api/places/{id}", h.getPlace)
	mux.HandleFunc("PUT /api/places/{id}", h.updatePlace)
	mux.HandleFunc("DELETE /api/places/{id}", h.deletePlace)
	mux.HandleFunc("POST /api/places/{id}/favorite", h.toggleFavorite)
	mux.HandleFunc("POST /api/places/{id}/focus", h.focusPlace)

	mux.HandleFunc("GET /api/statistics", h.statistics)
	mux.HandleFunc("GET /api/state", h.state)
	mux.HandleFunc("PUT /api/search", h.setQuery)
	mux.HandleFunc("PUT /api/category", h.setCategory)
	mux.HandleFunc("POST /api/dialog", h.showDialog)
	mux.HandleFunc("DELETE /api/dialog", h.dismissDialog)
	mux.HandleFunc("POST /api/error/take", h.takeError)
	mux.HandleFunc("DELETE /api/error", h.clearError)
	mux.HandleFunc("GET /api/events", h.events)

	return mux
}

// NewRouter returns the API routes wrapped with panic recovery and CORS for allowedOrigins.
func NewRouter(log *slog.Logger, coord Coordinator, allowedOrigins []string) http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(log.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return cors(recovery(NewHandler(log, coord).Routes()))
}

type placeRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Coordinates *models.Coordinates `json:"coordinates"`
	Address     string              `json:"address"`
	Category    string              `json:"category"`
	MarkerColor string              `json:"markerColor"`
}

func (p placeRequest) draft() models.PlaceDraft {
	draft := models.PlaceDraft{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		MarkerColor: p.MarkerColor,
	}
	if p.Coordinates != nil {
		draft.Coordinates = *p.Coordinates
	}

	return draft
}

type queryRequest struct {
	Query string `json:"query"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type dialogRequest struct {
	ID        *int64   `json:"id"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) listPlaces(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.coord.Places().Get())
}

func (h *Handler) getPlace(w http.ResponseWriter, r *http.Request) {
	place, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, r, http.StatusOK, place)
}

func (h *Handler) addPlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.writeError(w, r, http.StatusBadRequest, errMissingName)
		return
	}

	address := strings.TrimSpace(req.Address)
	switch {
	case req.Coordinates != nil:
		h.coord.AddPlace(req.draft())
	case address != "":
		h.coord.AddPlaceAtAddress(req.draft(), address)
	default:
		h.writeError(w, r, http.StatusBadRequest, errMissingLocation)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) updatePlace(w http.ResponseWriter, r *http.Request) {
	place, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req placeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.writeError(w, r, http.StatusBadRequest, errMissingName)
		return
	}

	place.Name = req.Name
	place.Description = req.Description
	if req.Coordinates != nil {
		place.Coordinates = *req.Coordinates
	}
	place.Category = req.Category
	place.MarkerColor = req.MarkerColor
	h.coord.UpdatePlace(place)

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) deletePlace(w http.ResponseWriter, r *http.Request) {
	place, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.coord.DeletePlace(place)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	place, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.coord.ToggleFavorite(place)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) focusPlace(w http.ResponseWriter, r *http.Request) {
	place, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.coord.FocusPlace(place)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.coord.Statistics().Get())
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.coord.State().Get())
}

func (h *Handler) setQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.coord.SetQuery(req.Query)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.coord.FilterByCategory(req.Category)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) showDialog(w http.ResponseWriter, r *http.Request) {
	var req dialogRequest
	if !h.decode(w, r, &req) {
		return
	}

	switch {
	case req.ID != nil:
		place, ok := h.coord.Place(*req.ID)
		if !ok {
			h.writeError(w, r, http.StatusNotFound, errPlaceNotFound(*req.ID))
			return
		}
		h.coord.ShowEditDialog(place)
	case req.Latitude != nil && req.Longitude != nil:
		h.coord.ShowAddDialog(models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude})
	default:
		h.writeError(w, r, http.StatusBadRequest, errDialogRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dismissDialog(w http.ResponseWriter, _ *http.Request) {
	h.coord.DismissDialog()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) takeError(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, messageResponse{Message: h.coord.TakeError()})
}

func (h *Handler) clearError(w http.ResponseWriter, _ *http.Request) {
	h.coord.ClearError()
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {id} path value against the latest snapshot, answering 400 or 404 itself.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (models.Place, bool) {
	placeID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, errors.New("invalid place id"))
		return models.Place{}, false
	}

	place, ok := h.coord.Place(placeID)
	if !ok {
		h.writeError(w, r, http.StatusNotFound, errPlaceNotFound(placeID))
		return models.Place{}, false
	}

	return place, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.writeError(w, r, http.StatusBadRequest, errors.New("invalid request body"))
		return false
	}

	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.log.DebugContext(r.Context(), "Request rejected", "path", r.URL.Path, "status", status, "error", err)
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func errPlaceNotFound(placeID int64) error {
	return fmt.Errorf("place %d not found", placeID)
}
