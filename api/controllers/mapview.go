package controllers

import (
	"net/http"

	"github.com/vmsuarez/usermap/api/responses"
	"github.com/vmsuarez/usermap/api/validators"
	"github.com/vmsuarez/usermap/internal/mapview"
	"github.com/vmsuarez/usermap/internal/records"
	"github.com/vmsuarez/usermap/internal/selection"
	"github.com/vmsuarez/usermap/internal/viewmodel"
	"github.com/vmsuarez/usermap/pkg/logger"
)

// MapView returns markers, bounds and popup state for the records that
// pass the active filter. The ready parameter reports whether the
// browser has finished loading the map library; until then the model
// stays empty.
func MapView(set *records.Set, coord *selection.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready, err := validators.ParseQueryBool(r, "ready", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recs, revision := set.Snapshot()
		filtered := viewmodel.Apply(recs, filterFromQuery(r))

		activeID := ""
		if id, ok := coord.Active(); ok {
			activeID = id
		}

		model := mapview.Build(filtered, activeID, ready)
		model.Revision = revision

		responses.WriteSuccess(w, model)
	}
}
