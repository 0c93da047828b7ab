package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const keepAliveInterval = 15 * time.Second

// events streams server-sent events: "state", "places" and "statistics", each
// carrying the full JSON snapshot. The current snapshots are sent on connect.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.WarnContext(ctx, "Failed to clear write deadline for event stream", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	states := h.coord.State().Subscribe(ctx)
	lists := h.coord.Places().Subscribe(ctx)
	stats := h.coord.Statistics().Subscribe(ctx)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	h.log.DebugContext(ctx, "Event stream opened", "remote", r.RemoteAddr)
	defer h.log.DebugContext(ctx, "Event stream closed", "remote", r.RemoteAddr)

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			err = writeEvent(w, "state", state)
		case list, ok := <-lists:
			if !ok {
				return
			}
			err = writeEvent(w, "places", list)
		case snapshot, ok := <-stats:
			if !ok {
				return
			}
			err = writeEvent(w, "statistics", snapshot)
		case <-keepAlive.C:
			_, err = fmt.Fprint(w, ": keep-alive\n\n")
		}

		if err == nil {
			err = rc.Flush()
		}
		if err != nil {
			h.log.DebugContext(ctx, "Event stream write failed", "error", err)
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", name, err)
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
