// Package catalog implements the in-memory product filter used by the
// storefront catalog page. Filtering is a pure function over the already
// loaded product list: predicates are combined with AND across groups and
// OR inside each multi-select group.
package catalog

import (
	"strings"

	"github.com/lustrahome/shop/internal/models"
)

// Filter domain bounds. Prices are kopecks, dimensions are millimeters.
const (
	MinPrice int64 = 0
	MaxPrice int64 = 15000000

	MinSize float64 = 0
	MaxSize float64 = 3000
)

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type SizeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SizeFilter holds one independent range per physical dimension. A product
// that does not declare a dimension passes that dimension's check.
type SizeFilter struct {
	Height      SizeRange `json:"height"`
	Length      SizeRange `json:"length"`
	Width       SizeRange `json:"width"`
	Depth       SizeRange `json:"depth"`
	Diameter    SizeRange `json:"diameter"`
	ChainLength SizeRange `json:"chain_length"`
}

// FilterState is a plain value object; the zero value is NOT a valid state,
// use NewFilterState for the match-everything defaults.
type FilterState struct {
	Query    string `json:"query"`
	Category string `json:"category"`

	SelectedBrands []string `json:"brands"`
	SelectedTypes  []string `json:"types"`
	SelectedStyles []string `json:"styles"`
	SelectedColors []string `json:"colors"`

	Price PriceRange `json:"price"`

	HasRemote      bool `json:"has_remote"`
	IsDimmable     bool `json:"is_dimmable"`
	HasColorChange bool `json:"has_color_change"`
	IsSale         bool `json:"is_sale"`
	IsNew          bool `json:"is_new"`
	IsPickup       bool `json:"is_pickup"`

	Sizes SizeFilter `json:"sizes"`
}

func fullSizeFilter() SizeFilter {
	full := SizeRange{Min: MinSize, Max: MaxSize}
	return SizeFilter{
		Height:      full,
		Length:      full,
		Width:       full,
		Depth:       full,
		Diameter:    full,
		ChainLength: full,
	}
}

func NewFilterState() FilterState {
	return FilterState{
		Price: PriceRange{Min: MinPrice, Max: MaxPrice},
		Sizes: fullSizeFilter(),
	}
}

// Reset restores every filter to its default but keeps the free-text query
// and the category selection. The catalog page exposes this as the narrow
// "reset filters" action next to the filter sidebar.
func (s *FilterState) Reset() {
	query, category := s.Query, s.Category
	*s = NewFilterState()
	s.Query = query
	s.Category = category
}

// ResetAll clears the query and category too.
func (s *FilterState) ResetAll() {
	*s = NewFilterState()
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func inSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (s *FilterState) matchesQuery(p *models.Product) bool {
	if s.Query == "" {
		return true
	}
	if containsFold(p.Name, s.Query) ||
		containsFold(p.Brand, s.Query) ||
		containsFold(p.Type, s.Query) ||
		containsFold(p.Description, s.Query) {
		return true
	}
	return p.Style != nil && containsFold(*p.Style, s.Query)
}

func matchesSize(value *float64, r SizeRange) bool {
	if value == nil {
		return true
	}
	return *value >= r.Min && *value <= r.Max
}

// Matches reports whether a single product satisfies every active predicate.
func (s *FilterState) Matches(p *models.Product) bool {
	if !s.matchesQuery(p) {
		return false
	}

	if len(s.SelectedBrands) > 0 && !inSet(s.SelectedBrands, p.Brand) {
		return false
	}
	if len(s.SelectedTypes) > 0 && !inSet(s.SelectedTypes, p.Type) {
		return false
	}

	if p.Price < s.Price.Min || p.Price > s.Price.Max {
		return false
	}

	if s.HasRemote && !p.HasRemote {
		return false
	}
	if s.IsDimmable && !p.IsDimmable {
		return false
	}
	if s.HasColorChange && !p.HasColorChange {
		return false
	}
	if s.IsSale && !p.IsSale {
		return false
	}
	if s.IsNew && !p.IsNew {
		return false
	}
	if s.IsPickup && !p.PickupAvailable {
		return false
	}

	if len(s.SelectedStyles) > 0 && (p.Style == nil || !inSet(s.SelectedStyles, *p.Style)) {
		return false
	}
	if len(s.SelectedColors) > 0 && (p.Color == nil || !inSet(s.SelectedColors, *p.Color)) {
		return false
	}

	return matchesSize(p.Height, s.Sizes.Height) &&
		matchesSize(p.Length, s.Sizes.Length) &&
		matchesSize(p.Width, s.Sizes.Width) &&
		matchesSize(p.Depth, s.Sizes.Depth) &&
		matchesSize(p.Diameter, s.Sizes.Diameter) &&
		matchesSize(p.ChainLength, s.Sizes.ChainLength)
}

// Filter returns the products matching every predicate in state, in the
// order they appear in the input. It never errors: an empty input yields an
// empty output and absent optional fields auto-pass their checks.
func Filter(products []models.Product, state FilterState) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if state.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}
