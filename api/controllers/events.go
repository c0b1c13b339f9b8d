package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/vmsuarez/usermap/api/responses"
	"github.com/vmsuarez/usermap/internal/stream"
	pkgerrors "github.com/vmsuarez/usermap/pkg/errors"
	"github.com/vmsuarez/usermap/pkg/logger"
	"github.com/vmsuarez/usermap/pkg/metrics"
)

// Events streams record-set and selection notifications over SSE. The
// payload carries only the change type and revision; clients re-fetch
// the view endpoints to pick up new data.
func Events(broker *stream.Broker, mtr *metrics.ServiceMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		clientID := uuid.NewString()
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithClientID(ctx, clientID)
		}

		ch := broker.AddClient(clientID)
		mtr.SetStreamClients(broker.ClientCount())
		defer func() {
			broker.RemoveClient(clientID)
			mtr.SetStreamClients(broker.ClientCount())
			if logg != nil {
				logg.Info(ctx, "stream.client_disconnected")
			}
		}()

		if logg != nil {
			logg.Info(ctx, "stream.client_connected")
		}

		writeEvent(w, stream.Event{Type: stream.EventConnected, Data: map[string]string{"client_id": clientID}})
		flusher.Flush()

		for {
			select {
			case <-ctx.Done():
				return
			case event, open := <-ch:
				if !open {
					return
				}
				if err := writeEvent(w, event); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, event stream.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.ID, event.Type, data)
	return err
}
