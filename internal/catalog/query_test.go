package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateFromQueryDefaults(t *testing.T) {
	s := StateFromQuery(url.Values{})
	require.Equal(t, NewFilterState(), s)
}

func TestStateFromQuerySeedsFields(t *testing.T) {
	q := url.Values{}
	q.Set("q", "люстра")
	q.Set("category", "chandeliers")
	q.Set("brands", "Lumion, Odeon Light")
	q.Set("types", "chandelier")
	q.Set("styles", "modern")
	q.Set("colors", "gold,black")
	q.Set("min_price", "100000")
	q.Set("max_price", "2000000")
	q.Set("has_remote", "true")
	q.Set("is_sale", "1")
	q.Set("min_height", "100")
	q.Set("max_height", "500")

	s := StateFromQuery(q)

	require.Equal(t, "люстра", s.Query)
	require.Equal(t, "chandeliers", s.Category)
	require.Equal(t, []string{"Lumion", "Odeon Light"}, s.SelectedBrands)
	require.Equal(t, []string{"chandelier"}, s.SelectedTypes)
	require.Equal(t, []string{"modern"}, s.SelectedStyles)
	require.Equal(t, []string{"gold", "black"}, s.SelectedColors)
	require.Equal(t, PriceRange{Min: 100000, Max: 2000000}, s.Price)
	require.True(t, s.HasRemote)
	require.True(t, s.IsSale)
	require.False(t, s.IsDimmable)
	require.Equal(t, SizeRange{Min: 100, Max: 500}, s.Sizes.Height)
	require.Equal(t, SizeRange{Min: MinSize, Max: MaxSize}, s.Sizes.Diameter)
}

func TestStateFromQueryMalformedFallsBack(t *testing.T) {
	q := url.Values{}
	q.Set("min_price", "not-a-number")
	q.Set("max_height", "tall")
	q.Set("has_remote", "yes")

	s := StateFromQuery(q)

	require.Equal(t, MinPrice, s.Price.Min)
	require.Equal(t, MaxSize, s.Sizes.Height.Max)
	require.False(t, s.HasRemote)
}

func TestStateFromQuerySearchAlias(t *testing.T) {
	q := url.Values{}
	q.Set("search", "бра")

	s := StateFromQuery(q)
	require.Equal(t, "бра", s.Query)
}
