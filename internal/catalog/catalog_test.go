package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

func load(t *testing.T) *Catalog {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	require.Equal(t, 8, c.Len())
	return c
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestGet(t *testing.T) {
	c := load(t)

	p, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Premium Notebook", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.99")))

	_, err = c.Get("999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategories(t *testing.T) {
	c := load(t)
	assert.Equal(t, []string{"notebooks", "art", "writing", "office"}, c.Categories())
}

func TestListFilters(t *testing.T) {
	c := load(t)

	assert.Equal(t, []string{"3", "4"}, ids(c.List(Query{Category: "writing"})))
	assert.Len(t, c.List(Query{Category: "all"}), 8)
	assert.Equal(t, []string{"2", "4", "7"}, ids(c.List(Query{NewOnly: true})))
	assert.Equal(t, []string{"1", "6", "8"}, ids(c.List(Query{SaleOnly: true})))

	min := decimal.RequireFromString("10.00")
	max := decimal.RequireFromString("20.00")
	assert.Equal(t, []string{"1", "6", "7", "8"}, ids(c.List(Query{MinPrice: &min, MaxPrice: &max})))

	assert.Equal(t, []string{"1", "7"}, ids(c.List(Query{Search: "notebook"})))
	// Search also matches descriptions.
	assert.Contains(t, ids(c.List(Query{Search: "vibrant"})), "2")
	assert.Empty(t, c.List(Query{Search: "typewriter"}))
}

func TestListSorts(t *testing.T) {
	c := load(t)

	lowFirst := c.List(Query{Sort: SortPriceLow})
	assert.Equal(t, "5", lowFirst[0].ID)
	assert.Equal(t, "4", lowFirst[len(lowFirst)-1].ID)

	highFirst := c.List(Query{Sort: SortPriceHigh})
	assert.Equal(t, "4", highFirst[0].ID)

	byName := c.List(Query{Sort: SortNameAsc})
	assert.Equal(t, "Colored Pencil Set", byName[0].Name)

	byRating := c.List(Query{Sort: SortRating})
	assert.Equal(t, "4", byRating[0].ID)

	newest := c.List(Query{Sort: SortNewest})
	assert.True(t, newest[0].IsNew)

	// Default keeps fixture order.
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(c.List(Query{})))
}

func TestFromJSONRejectsDuplicates(t *testing.T) {
	_, err := fromJSON([]byte(`[{"id":"1","name":"a","price":"1"},{"id":"1","name":"b","price":"2"}]`))
	assert.Error(t, err)

	_, err = fromJSON([]byte(`[{"name":"missing id","price":"1"}]`))
	assert.Error(t, err)
}
