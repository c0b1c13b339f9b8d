package records

// Record is the canonical user record rendered by the table and the map.
// Coordinates stay nil when the store never supplied a usable value.
type Record struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Zip       string   `json:"zip"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
}
