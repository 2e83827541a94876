package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"kadoshrent/internal/entities"
	"kadoshrent/internal/utils"
)

//go:embed catalog.json
var catalogData []byte

// CatalogRepository is the read-only vehicle catalog. It is built once at
// startup and only hands out copies.
type CatalogRepository struct {
	vehicles []entities.Vehicle
	byID     map[string]int
}

// NewCatalogRepository loads the catalog embedded in the binary.
func NewCatalogRepository() (*CatalogRepository, error) {
	var vehicles []entities.Vehicle
	if err := json.Unmarshal(catalogData, &vehicles); err != nil {
		return nil, fmt.Errorf("error decoding embedded catalog: %w", err)
	}
	return NewCatalogRepositoryFromVehicles(vehicles)
}

func NewCatalogRepositoryFromVehicles(vehicles []entities.Vehicle) (*CatalogRepository, error) {
	repo := &CatalogRepository{
		vehicles: make([]entities.Vehicle, 0, len(vehicles)),
		byID:     make(map[string]int, len(vehicles)),
	}
	for i, v := range vehicles {
		if err := validateVehicle(v); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := repo.byID[v.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate vehicle id %q", i, v.ID)
		}
		repo.byID[v.ID] = len(repo.vehicles)
		repo.vehicles = append(repo.vehicles, cloneVehicle(v))
	}
	return repo, nil
}

func validateVehicle(v entities.Vehicle) error {
	if v.ID == "" {
		return fmt.Errorf("vehicle id is empty")
	}
	if v.Name == "" {
		return fmt.Errorf("vehicle %q has no name", v.ID)
	}
	if !utils.IsKnownCategory(v.Category) {
		return fmt.Errorf("vehicle %q has unknown category %q", v.ID, v.Category)
	}
	if v.Seats <= 0 {
		return fmt.Errorf("vehicle %q must have at least one seat", v.ID)
	}
	if v.PricePerDay < 0 {
		return fmt.Errorf("vehicle %q has a negative price", v.ID)
	}
	return nil
}

// All returns the catalog in its original order.
func (r *CatalogRepository) All() []entities.Vehicle {
	out := make([]entities.Vehicle, len(r.vehicles))
	for i, v := range r.vehicles {
		out[i] = cloneVehicle(v)
	}
	return out
}

func (r *CatalogRepository) FindByID(id string) (entities.Vehicle, bool) {
	i, ok := r.byID[id]
	if !ok {
		return entities.Vehicle{}, false
	}
	return cloneVehicle(r.vehicles[i]), true
}

// Categories returns the categories present in the catalog, first-seen order.
func (r *CatalogRepository) Categories() []string {
	cats := make([]string, len(r.vehicles))
	for i, v := range r.vehicles {
		cats[i] = v.Category
	}
	return utils.DistinctCategories(cats)
}

// PriceBounds returns the lowest and highest daily price. An empty catalog
// yields zero bounds.
func (r *CatalogRepository) PriceBounds() entities.PriceBounds {
	if len(r.vehicles) == 0 {
		return entities.PriceBounds{}
	}
	b := entities.PriceBounds{Min: r.vehicles[0].PricePerDay, Max: r.vehicles[0].PricePerDay}
	for _, v := range r.vehicles[1:] {
		if v.PricePerDay < b.Min {
			b.Min = v.PricePerDay
		}
		if v.PricePerDay > b.Max {
			b.Max = v.PricePerDay
		}
	}
	return b
}

func (r *CatalogRepository) Len() int { return len(r.vehicles) }

func cloneVehicle(v entities.Vehicle) entities.Vehicle {
	v.Images = append([]string(nil), v.Images...)
	if v.Features != nil {
		v.Features = append([]string(nil), v.Features...)
	}
	return v
}
