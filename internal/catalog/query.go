package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolParam(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}

func priceParam(v string, def int64) int64 {
	if v == "" {
		return def
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return def
}

func sizeParam(v string, def float64) float64 {
	if v == "" {
		return def
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return def
}

func sizeRangeParams(q url.Values, field string) SizeRange {
	return SizeRange{
		Min: sizeParam(q.Get("min_"+field), MinSize),
		Max: sizeParam(q.Get("max_"+field), MaxSize),
	}
}

// StateFromQuery seeds a FilterState from URL query parameters. Parameter
// names mirror the storefront's catalog links: q, category, brands, types,
// styles, colors (comma separated), min_price/max_price, the boolean feature
// toggles, and min_<dim>/max_<dim> per dimension. Unknown or malformed
// values fall back to the match-everything default for that field.
func StateFromQuery(q url.Values) FilterState {
	s := NewFilterState()

	s.Query = q.Get("q")
	if s.Query == "" {
		s.Query = q.Get("search")
	}
	s.Category = q.Get("category")

	s.SelectedBrands = splitParam(q.Get("brands"))
	s.SelectedTypes = splitParam(q.Get("types"))
	s.SelectedStyles = splitParam(q.Get("styles"))
	s.SelectedColors = splitParam(q.Get("colors"))

	s.Price.Min = priceParam(q.Get("min_price"), MinPrice)
	s.Price.Max = priceParam(q.Get("max_price"), MaxPrice)

	s.HasRemote = boolParam(q.Get("has_remote"))
	s.IsDimmable = boolParam(q.Get("is_dimmable"))
	s.HasColorChange = boolParam(q.Get("has_color_change"))
	s.IsSale = boolParam(q.Get("is_sale"))
	s.IsNew = boolParam(q.Get("is_new"))
	s.IsPickup = boolParam(q.Get("pickup_available"))

	s.Sizes.Height = sizeRangeParams(q, "height")
	s.Sizes.Length = sizeRangeParams(q, "length")
	s.Sizes.Width = sizeRangeParams(q, "width")
	s.Sizes.Depth = sizeRangeParams(q, "depth")
	s.Sizes.Diameter = sizeRangeParams(q, "diameter")
	s.Sizes.ChainLength = sizeRangeParams(q, "chain_length")

	return s
}
