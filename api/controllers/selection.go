package controllers

import (
	"net/http"

	"github.com/vmsuarez/usermap/api/responses"
	"github.com/vmsuarez/usermap/api/validators"
	"github.com/vmsuarez/usermap/internal/selection"
	"github.com/vmsuarez/usermap/pkg/logger"
)

type selectionState struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

type selectionRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}

func SelectionGet(coord *selection.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := coord.Active()
		responses.WriteSuccess(w, selectionState{ID: id, Active: ok})
	}
}

// SelectionSet marks a record as highlighted. Writes are
// last-write-wins across all connected browsers.
func SelectionSet(coord *selection.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body selectionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coord.Set(body.ID)
		responses.WriteSuccess(w, selectionState{ID: body.ID, Active: true})
	}
}

func SelectionClear(coord *selection.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coord.Clear()
		responses.WriteSuccess(w, selectionState{})
	}
}
