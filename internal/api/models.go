package api

import "kadoshrent/internal/entities"

// Home page
type HomeResponse struct {
	Locale  string                       `json:"locale"`
	Strings map[string]map[string]string `json:"strings"`
	Search  entities.SearchResult        `json:"search"`
}

// Vehicle detail page
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Thumbnail struct {
	Index  int    `json:"index"`
	Src    string `json:"src"`
	Active bool   `json:"active"`
	Href   string `json:"href"`
}

type GalleryState struct {
	SelectedIndex int         `json:"selectedIndex"`
	SelectedImage string      `json:"selectedImage,omitempty"`
	Thumbnails    []Thumbnail `json:"thumbnails"`
}

type VehicleDetailResponse struct {
	Locale      string            `json:"locale"`
	Vehicle     entities.Vehicle  `json:"vehicle"`
	Category    string            `json:"categoryLabel"`
	Gallery     GalleryState      `json:"gallery"`
	Strings     map[string]string `json:"strings"`
	BackToFleet Link              `json:"backToFleet"`
}

type NotFoundResponse struct {
	Locale      string `json:"locale"`
	NotFound    bool   `json:"notFound"`
	Message     string `json:"message"`
	BackToFleet Link   `json:"backToFleet"`
}

// API
type LocaleResponse struct {
	Locale     string         `json:"locale"`
	Dictionary map[string]any `json:"dictionary"`
}

type TimeSlotsResponse struct {
	Slots []string `json:"slots"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
