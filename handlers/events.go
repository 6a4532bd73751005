package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const keepaliveInterval = 30 * time.Second

// Events streams movie mutations over SSE. Each client gets its own
// bounded queue from the hub; a ping goes out whenever the stream has
// been idle for the keepalive interval.
func (app *App) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := app.Hub.Register()
	defer app.Hub.Unregister(ch)

	idle := time.NewTimer(keepaliveInterval)
	defer idle.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case event, open := <-ch:
			if !open {
				// Hub shut down or dropped us as congested
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				slog.Error("Failed to marshal event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: movie_update\ndata: %s\n\n", payload)
			flusher.Flush()

		case <-idle.C:
			fmt.Fprint(w, "event: ping\ndata: \n\n")
			flusher.Flush()
		}

		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		idle.Reset(keepaliveInterval)
	}
}
