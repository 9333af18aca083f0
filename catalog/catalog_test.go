package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	require.NoError(t, Validate(DefaultEntries()))
	assert.Equal(t, len(DefaultEntries()), Default.Len())
}

func TestLookup(t *testing.T) {
	car, ok := Default.Lookup("car")
	require.True(t, ok)
	assert.Equal(t, CategoryTransport, car.Category)
	assert.InDelta(t, 0.24, car.CarbonPerUnit, 1e-9)
	assert.True(t, car.IsEmission)

	veg, ok := Default.Lookup("vegetarian_meal")
	require.True(t, ok)
	assert.InDelta(t, -2.0, veg.CarbonPerUnit, 1e-9)
	assert.False(t, veg.IsEmission)

	_, ok = Default.Lookup("teleport")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	for _, cat := range Categories {
		entries := Default.ByCategory(cat)
		assert.NotEmpty(t, entries, "category %s has no entries", cat)
		for _, e := range entries {
			assert.Equal(t, cat, e.Category)
		}
	}
	assert.Empty(t, Default.ByCategory("unknown"))
}

func TestAllReturnsCopy(t *testing.T) {
	all := Default.All()
	all[0].CarbonPerUnit = 999

	first, ok := Default.Lookup(all[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, 999.0, first.CarbonPerUnit)
}

func TestValidateRejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{
			name: "duplicate id",
			entries: []Entry{
				{ID: "car", Category: CategoryTransport, CarbonPerUnit: 0.2, IsEmission: true},
				{ID: "car", Category: CategoryTransport, CarbonPerUnit: 0.3, IsEmission: true},
			},
		},
		{
			name:    "emission with negative factor",
			entries: []Entry{{ID: "x", Category: CategoryFood, CarbonPerUnit: -1, IsEmission: true}},
		},
		{
			name:    "avoidance with positive factor",
			entries: []Entry{{ID: "y", Category: CategoryGreen, CarbonPerUnit: 1}},
		},
		{
			name:    "unknown category",
			entries: []Entry{{ID: "z", Category: "space", CarbonPerUnit: 1, IsEmission: true}},
		},
		{
			name:    "empty id",
			entries: []Entry{{Category: CategoryGreen, CarbonPerUnit: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("transport"))
	assert.True(t, IsCategory("Energy"))
	assert.False(t, IsCategory("space"))
}
