package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kadoshrent/internal/entities"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	repo, err := NewCatalogRepository()
	require.NoError(t, err)
	require.NotZero(t, repo.Len())

	for _, v := range repo.All() {
		assert.NotEmpty(t, v.ID)
		assert.Positive(t, v.Seats)
		assert.GreaterOrEqual(t, v.PricePerDay, 0.0)
	}
}

func TestCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalogRepositoryFromVehicles([]entities.Vehicle{
		{ID: "1", Name: "A", Category: "sedan", Seats: 4},
		{ID: "1", Name: "B", Category: "suv", Seats: 5},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestCatalogRejectsInvalidEntries(t *testing.T) {
	cases := map[string]entities.Vehicle{
		"empty id":         {Name: "A", Category: "sedan", Seats: 4},
		"unknown category": {ID: "1", Name: "A", Category: "bus", Seats: 4},
		"no seats":         {ID: "1", Name: "A", Category: "sedan"},
		"negative price":   {ID: "1", Name: "A", Category: "sedan", Seats: 4, PricePerDay: -1},
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalogRepositoryFromVehicles([]entities.Vehicle{v})
			assert.Error(t, err)
		})
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	repo, err := NewCatalogRepositoryFromVehicles([]entities.Vehicle{
		{ID: "1", Name: "Test Car", Category: "sedan", Seats: 4, PricePerDay: 100, Images: []string{"/a.jpg", "/b.jpg"}},
	})
	require.NoError(t, err)

	all := repo.All()
	all[0].Name = "changed"
	all[0].Images[0] = "/changed.jpg"

	v, ok := repo.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, "Test Car", v.Name)
	assert.Equal(t, "/a.jpg", v.Images[0])

	_, ok = repo.FindByID("missing")
	assert.False(t, ok)
}

func TestCategoriesAndPriceBounds(t *testing.T) {
	repo, err := NewCatalogRepositoryFromVehicles([]entities.Vehicle{
		{ID: "1", Name: "A", Category: "suv", Seats: 5, PricePerDay: 80},
		{ID: "2", Name: "B", Category: "sedan", Seats: 5, PricePerDay: 40},
		{ID: "3", Name: "C", Category: "suv", Seats: 7, PricePerDay: 120},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"suv", "sedan"}, repo.Categories())
	assert.Equal(t, entities.PriceBounds{Min: 40, Max: 120}, repo.PriceBounds())

	empty, err := NewCatalogRepositoryFromVehicles(nil)
	require.NoError(t, err)
	assert.Equal(t, entities.PriceBounds{}, empty.PriceBounds())
}
