package mapview

import (
	"fmt"
	"strconv"

	"github.com/vmsuarez/usermap/internal/records"
	"github.com/vmsuarez/usermap/internal/viewmodel"
)

const (
	defaultZoom = 3

	// BoundsPadding is the pixel padding the client applies when fitting
	// the viewport to Bounds.
	BoundsPadding = 48
)

// fallbackCenter is used when no record has usable coordinates: the
// geographic center of the contiguous United States.
var fallbackCenter = LatLng{Lat: 39.5, Lng: -98.35}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Model is the renderable map state for one record snapshot.
type Model struct {
	Ready    bool     `json:"ready"`
	Markers  []Marker `json:"markers"`
	Center   LatLng   `json:"center"`
	Zoom     int      `json:"zoom"`
	Bounds   *Bounds  `json:"bounds,omitempty"`
	Padding  int      `json:"padding"`
	Popup    *Popup   `json:"popup,omitempty"`
	Revision int64    `json:"revision"`
}

// Marker is one coordinate-valid record on the map. Active markers
// render with the bounce animation.
type Marker struct {
	ID       string `json:"id"`
	Position LatLng `json:"position"`
	Active   bool   `json:"active"`
}

// Bounds is the tight viewport enclosing every marker.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Popup is the info window anchored at the active record.
type Popup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Zip         string `json:"zip"`
	Timezone    string `json:"timezone,omitempty"`
	Coordinates string `json:"coordinates"`
	Link        string `json:"link"`
	Position    LatLng `json:"position"`
}

// Build derives the map model from the filtered record list. Records
// without finite coordinates are silently excluded. Until the map
// surface reports ready the model is empty and the client renders
// nothing.
func Build(recs []records.Record, activeID string, ready bool) Model {
	if !ready {
		return Model{}
	}

	model := Model{
		Ready:   true,
		Markers: make([]Marker, 0, len(recs)),
		Center:  fallbackCenter,
		Zoom:    defaultZoom,
		Padding: BoundsPadding,
	}

	var bounds *Bounds
	for _, r := range recs {
		if !viewmodel.CoordinateValid(r) {
			continue
		}
		pos := LatLng{Lat: *r.Latitude, Lng: *r.Longitude}
		if len(model.Markers) == 0 {
			model.Center = pos
		}

		active := activeID != "" && r.ID == activeID
		model.Markers = append(model.Markers, Marker{ID: r.ID, Position: pos, Active: active})
		if active {
			model.Popup = popupFor(r, pos)
		}

		if bounds == nil {
			bounds = &Bounds{South: pos.Lat, West: pos.Lng, North: pos.Lat, East: pos.Lng}
			continue
		}
		if pos.Lat < bounds.South {
			bounds.South = pos.Lat
		}
		if pos.Lat > bounds.North {
			bounds.North = pos.Lat
		}
		if pos.Lng < bounds.West {
			bounds.West = pos.Lng
		}
		if pos.Lng > bounds.East {
			bounds.East = pos.Lng
		}
	}
	model.Bounds = bounds
	return model
}

func popupFor(r records.Record, pos LatLng) *Popup {
	return &Popup{
		ID:          r.ID,
		Name:        r.Name,
		Zip:         r.Zip,
		Timezone:    r.Timezone,
		Coordinates: fmt.Sprintf("%.4f, %.4f", pos.Lat, pos.Lng),
		Link:        "https://maps.google.com/?q=" + rawCoord(pos.Lat) + "," + rawCoord(pos.Lng),
		Position:    pos,
	}
}

// rawCoord keeps the external link built from the raw stored value, not
// the display rounding.
func rawCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
