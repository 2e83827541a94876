package service

import (
	"net/url"
	"strconv"
	"strings"

	"kadoshrent/internal/entities"
	"kadoshrent/internal/metrics"
	"kadoshrent/internal/repository"
	"kadoshrent/internal/utils"
)

// FilterVehicles returns the vehicles of catalog matching spec, in catalog
// order. A price bound equal to the catalog's own minimum or maximum is not
// applied, so the full-range slider position never hides anything.
func FilterVehicles(catalog []entities.Vehicle, spec entities.FilterSpec) []entities.Vehicle {
	bounds := priceBounds(catalog)
	search := strings.ToLower(strings.TrimSpace(spec.SearchText))
	category := utils.NormalizeCategory(spec.Category)

	useMin := spec.MinPrice != nil && *spec.MinPrice != bounds.Min
	useMax := spec.MaxPrice != nil && *spec.MaxPrice != bounds.Max

	out := make([]entities.Vehicle, 0, len(catalog))
	for _, v := range catalog {
		if search != "" && !strings.Contains(strings.ToLower(v.Name), search) {
			continue
		}
		if category != utils.CategoryAll && v.Category != category {
			continue
		}
		if useMin && v.PricePerDay < *spec.MinPrice {
			continue
		}
		if useMax && v.PricePerDay > *spec.MaxPrice {
			continue
		}
		if spec.MinSeats > 0 && v.Seats < spec.MinSeats {
			continue
		}
		out = append(out, v)
	}
	return out
}

func priceBounds(vehicles []entities.Vehicle) entities.PriceBounds {
	if len(vehicles) == 0 {
		return entities.PriceBounds{}
	}
	b := entities.PriceBounds{Min: vehicles[0].PricePerDay, Max: vehicles[0].PricePerDay}
	for _, v := range vehicles[1:] {
		if v.PricePerDay < b.Min {
			b.Min = v.PricePerDay
		}
		if v.PricePerDay > b.Max {
			b.Max = v.PricePerDay
		}
	}
	return b
}

// ParseFilterSpec decodes the catalog query string: q, category, minPrice,
// maxPrice and minSeats.
func ParseFilterSpec(q url.Values) (entities.FilterSpec, error) {
	spec := entities.FilterSpec{
		SearchText: q.Get("q"),
		Category:   utils.NormalizeCategory(q.Get("category")),
	}
	errs := ValidationErrors{}

	parsePrice := func(field string) *float64 {
		raw := strings.TrimSpace(q.Get(field))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			errs.Add(field, "Must be a non-negative number")
			return nil
		}
		return &v
	}
	spec.MinPrice = parsePrice("minPrice")
	spec.MaxPrice = parsePrice("maxPrice")

	if raw := strings.TrimSpace(q.Get("minSeats")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs.Add("minSeats", "Must be a non-negative integer")
		} else {
			spec.MinSeats = n
		}
	}
	if spec.Category != utils.CategoryAll && !utils.IsKnownCategory(spec.Category) {
		errs.Add("category", "Unknown category")
	}

	if len(errs) > 0 {
		return entities.FilterSpec{}, errs
	}
	return spec, nil
}

type FilterService struct {
	Repo *repository.CatalogRepository
}

func NewFilterService(repo *repository.CatalogRepository) *FilterService {
	return &FilterService{Repo: repo}
}

// Search filters the catalog. Category labels are left for the caller to localize.
func (s *FilterService) Search(spec entities.FilterSpec) entities.SearchResult {
	metrics.VehicleSearchesTotal.Inc()

	vehicles := FilterVehicles(s.Repo.All(), spec)
	cats := s.Repo.Categories()
	options := make([]entities.CategoryOption, 0, len(cats))
	for _, c := range cats {
		options = append(options, entities.CategoryOption{Value: c, Label: c})
	}
	return entities.SearchResult{
		Vehicles:    vehicles,
		Total:       len(vehicles),
		Categories:  options,
		PriceBounds: s.Repo.PriceBounds(),
		Filter:      spec,
	}
}

func (s *FilterService) FindVehicle(id string) (entities.Vehicle, error) {
	v, ok := s.Repo.FindByID(id)
	if !ok {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}
