package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/vmsuarez/usermap/api/responses"
	"github.com/vmsuarez/usermap/internal/records"
	"github.com/vmsuarez/usermap/internal/viewmodel"
	"github.com/vmsuarez/usermap/pkg/logger"
)

func filterFromQuery(r *http.Request) viewmodel.Filter {
	return viewmodel.Filter{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Timezone: strings.TrimSpace(r.URL.Query().Get("tz")),
	}
}

// TableView returns the sorted, filtered rows together with the
// timezone choices for the filter dropdown.
func TableView(set *records.Set, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, revision := set.Snapshot()

		view := viewmodel.Build(recs, filterFromQuery(r), time.Now())
		view.Revision = revision

		responses.WriteSuccess(w, view)
	}
}
