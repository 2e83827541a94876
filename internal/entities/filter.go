package entities

// FilterSpec is the catalog search state driven by the filter controls.
// Nil price bounds and a zero MinSeats mean "not set".
type FilterSpec struct {
	SearchText string   `json:"searchText"`
	Category   string   `json:"category"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
	MinSeats   int      `json:"minSeats"`
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type SearchResult struct {
	Vehicles    []Vehicle        `json:"vehicles"`
	Total       int              `json:"total"`
	Categories  []CategoryOption `json:"categories"`
	PriceBounds PriceBounds      `json:"priceBounds"`
	Filter      FilterSpec       `json:"filter"`
}
