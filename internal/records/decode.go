package records

import (
	"encoding/json"
	"strconv"
	"strings"
)

// wireRecord mirrors the store payload. Older snapshots carry coordinates
// under lat/lon instead of latitude/longitude, and zip sometimes arrives
// as a bare number.
type wireRecord struct {
	Name      string          `json:"name"`
	Zip       json.RawMessage `json:"zip"`
	Latitude  json.RawMessage `json:"latitude"`
	Lat       json.RawMessage `json:"lat"`
	Longitude json.RawMessage `json:"longitude"`
	Lon       json.RawMessage `json:"lon"`
	Timezone  string          `json:"timezone"`
}

// Decode normalizes one raw store entry into a canonical Record. The
// legacy lat/lon fields are used only when the canonical fields are
// absent, matching the store's nullish-fallback contract.
func Decode(id string, raw json.RawMessage) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return Record{}, err
	}
	return Record{
		ID:        id,
		Name:      w.Name,
		Zip:       flexString(w.Zip),
		Latitude:  coordinate(w.Latitude, w.Lat),
		Longitude: coordinate(w.Longitude, w.Lon),
		Timezone:  w.Timezone,
	}, nil
}

// flexString stringifies a field that may arrive as a JSON string or
// number.
func flexString(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.TrimSpace(string(raw))
}

// coordinate parses a coordinate that may arrive as a number or a
// numeric string. A field that is present but unparseable yields nil,
// which downgrades the record to coordinate-invalid without failing it.
func coordinate(primary, legacy json.RawMessage) *float64 {
	raw := primary
	if isAbsent(raw) {
		raw = legacy
	}
	if isAbsent(raw) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
