package catalog

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skorpik-value/models"
)

func TestNewStoreRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []models.Item
	}{
		{"missing id", []models.Item{{Name: "x", Rarity: models.RarityPass}}},
		{"duplicate id", []models.Item{
			{ID: "a", Rarity: models.RarityPass},
			{ID: "a", Rarity: models.RarityDivine},
		}},
		{"negative value", []models.Item{{ID: "a", Rarity: models.RarityPass, Value: -1}}},
		{"demand too high", []models.Item{{ID: "a", Rarity: models.RarityPass, Demand: 10.5}}},
		{"demand negative", []models.Item{{ID: "a", Rarity: models.RarityPass, Demand: -0.1}}},
		{"unknown rarity", []models.Item{{ID: "a", Rarity: "Mythic"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.items)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
		})
	}
}

func TestStoreIsReadOnlyAfterLoad(t *testing.T) {
	items := testItems()
	store, err := NewStore(items)
	require.NoError(t, err)

	items[0].Name = "changed"
	got, ok := store.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Banana", got.Name)

	copied := store.Items()
	copied[1].Value = 0
	got, _ = store.Get("2")
	assert.Equal(t, int64(100), got.Value)
}

func TestStoreGetMissing(t *testing.T) {
	store, err := NewStore(testItems())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, 5, store.Len())
}

func TestLoadJSONNormalizesStatus(t *testing.T) {
	data := `[
		{"id": "scorp", "name": "Golden Scorpion", "rarity": "Divine", "value": 12000, "demand": 8.5, "status": "Big Rising"},
		{"id": "pass1", "name": "Season Pass", "rarity": "Pass", "value": 400, "demand": 3}
	]`
	store, err := LoadJSON(strings.NewReader(data))
	require.NoError(t, err)

	scorp, ok := store.Get("scorp")
	require.True(t, ok)
	assert.Equal(t, models.StatusBigRising, scorp.Status)
	assert.Equal(t, int64(12000), scorp.Value)

	pass, _ := store.Get("pass1")
	assert.Equal(t, models.StatusStable, pass.Status)
	assert.Empty(t, pass.Image)
}

func TestNewStoreNormalizesStatus(t *testing.T) {
	store, err := NewStore([]models.Item{
		{ID: "a", Rarity: models.RarityDivine, Status: "Big Rising"},
		{ID: "b", Rarity: models.RarityPass, Status: "bogus"},
		{ID: "c", Rarity: models.RarityPass},
		{ID: "d", Rarity: models.RarityExclusive, Status: models.StatusDropping},
	})
	require.NoError(t, err)

	want := map[string]models.Status{
		"a": models.StatusBigRising,
		"b": models.StatusStable,
		"c": models.StatusStable,
		"d": models.StatusDropping,
	}
	for id, status := range want {
		item, ok := store.Get(id)
		require.True(t, ok)
		assert.Equal(t, status, item.Status, id)
	}
}

func TestLoadJSONBadInput(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"not": "an array"}`))
	require.Error(t, err)
}

func TestStoreView(t *testing.T) {
	store, err := NewStore(testItems())
	require.NoError(t, err)

	got := store.View(models.ViewState{ActiveFilter: "Divine", SortKey: models.SortByPriceLow, SortOrder: models.SortAsc})
	assert.Equal(t, []string{"1", "3"}, ids(got))
}
