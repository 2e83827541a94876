package entities

// Vehicle is one rentable entry of the catalog. Values are never mutated after
// the catalog is loaded.
type Vehicle struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Seats       int      `json:"seats"`
	Engine      string   `json:"engine"`
	PricePerDay float64  `json:"pricePerDay"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
}
