package viewmodel

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vmsuarez/usermap/internal/records"
)

const (
	localTimePlaceholder = "-"
	localTimeLayout      = "Mon 15:04"
)

// Filter carries the table's ephemeral filter inputs. Zero value means no
// filtering.
type Filter struct {
	Search   string
	Timezone string
}

// View is the renderable table state derived from one record snapshot.
type View struct {
	Rows      []Row    `json:"rows"`
	Timezones []string `json:"timezones"`
	Revision  int64    `json:"revision"`
}

// Row is one table line.
type Row struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Zip             string   `json:"zip"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	LocalTime       string   `json:"local_time"`
	CoordinateValid bool     `json:"coordinate_valid"`
}

// Build derives the full table view. It is pure: the same records, filter
// and clock always produce the same view, however often it runs.
func Build(recs []records.Record, f Filter, now time.Time) View {
	view := View{
		Rows:      make([]Row, 0, len(recs)),
		Timezones: Timezones(recs),
	}
	for _, r := range Apply(recs, f) {
		view.Rows = append(view.Rows, Row{
			ID:              r.ID,
			Name:            r.Name,
			Zip:             r.Zip,
			Latitude:        r.Latitude,
			Longitude:       r.Longitude,
			Timezone:        r.Timezone,
			LocalTime:       LocalTime(r.Timezone, now),
			CoordinateValid: CoordinateValid(r),
		})
	}
	return view
}

// Apply returns the records in canonical display order with the filter
// applied. The input slice is never mutated.
func Apply(recs []records.Record, f Filter) []records.Record {
	sorted := SortByName(recs)
	if f == (Filter{}) {
		return sorted
	}
	out := sorted[:0]
	for _, r := range sorted {
		if Matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// SortByName orders records by name ascending under locale-aware,
// case-insensitive collation. This is the canonical display order.
func SortByName(recs []records.Record) []records.Record {
	out := make([]records.Record, len(recs))
	copy(out, recs)
	col := collate.New(language.English, collate.Loose)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// Timezones lists the distinct timezone values present in the unfiltered
// set, ascending, for the filter control.
func Timezones(recs []records.Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range recs {
		if r.Timezone == "" {
			continue
		}
		if _, ok := seen[r.Timezone]; ok {
			continue
		}
		seen[r.Timezone] = struct{}{}
		out = append(out, r.Timezone)
	}
	sort.Strings(out)
	return out
}

// Matches applies the conjunctive table filter: the search term must hit
// name or zip (case-insensitive substring) AND the timezone must equal
// the selected filter. An empty input passes its half.
func Matches(r records.Record, f Filter) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	matchQ := q == "" ||
		strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Zip), q)
	matchTZ := f.Timezone == "" || r.Timezone == f.Timezone
	return matchQ && matchTZ
}

// CoordinateValid reports whether both coordinates parse to finite
// numbers. Out-of-range but finite values (lat=200) still count; validity
// gates map rendering, not geographic plausibility.
func CoordinateValid(r records.Record) bool {
	return finite(r.Latitude) && finite(r.Longitude)
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// LocalTime formats the wall clock in the record's zone as weekday plus
// 24-hour time. Absent or unresolvable zones render the placeholder.
func LocalTime(tz string, now time.Time) string {
	if tz == "" {
		return localTimePlaceholder
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return localTimePlaceholder
	}
	return now.In(loc).Format(localTimeLayout)
}
