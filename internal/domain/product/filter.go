// internal/domain/product/filter.go
package product

import (
	"net/url"
	"strconv"
	"strings"
)

// Price bounds for the catalog filter
const (
	PriceMinDefault = 0
	PriceMaxDefault = 10000
)

// Facet parameter names as they appear in the query string
const (
	FacetCategories = "categories"
	FacetBrands     = "brands"
	FacetColors     = "colors"
	FacetMemory     = "memory"
	FacetScreenSize = "screenSize"
	FacetCondition  = "condition"
)

// FilterState is the faceted filter selection for the product list.
// The URL query string is the single source of truth: a FilterState is always
// reconstructible from it via ParseFilterState and serialized back via Values.
type FilterState struct {
	PriceMin    int      `json:"priceMin"`
	PriceMax    int      `json:"priceMax"`
	Categories  []string `json:"categories"`
	Brands      []string `json:"brands"`
	Rating      int      `json:"rating"`
	Colors      []string `json:"colors"`
	Memory      []string `json:"memory"`
	ScreenSizes []string `json:"screenSize"`
	Conditions  []string `json:"condition"`
}

// DefaultFilterState returns the state with no constraints active
func DefaultFilterState() FilterState {
	return FilterState{
		PriceMin: PriceMinDefault,
		PriceMax: PriceMaxDefault,
	}
}

// ParseFilterState reconstructs a FilterState from a query string.
// Absent parameters mean "no constraint". An inverted price range is
// normalized so PriceMin <= PriceMax always holds.
func ParseFilterState(q url.Values) FilterState {
	f := DefaultFilterState()

	f.PriceMin = clampPrice(intParam(q, "priceMin", PriceMinDefault))
	f.PriceMax = clampPrice(intParam(q, "priceMax", PriceMaxDefault))
	if f.PriceMin > f.PriceMax {
		f.PriceMax = f.PriceMin
	}

	f.Rating = intParam(q, "rating", 0)
	if f.Rating < 0 {
		f.Rating = 0
	}

	f.Categories = tokensParam(q, FacetCategories)
	f.Brands = tokensParam(q, FacetBrands)
	f.Colors = tokensParam(q, FacetColors)
	f.Memory = tokensParam(q, FacetMemory)
	f.ScreenSizes = tokensParam(q, FacetScreenSize)
	f.Conditions = tokensParam(q, FacetCondition)

	return f
}

// Values serializes the state back to query parameters.
// Default values serialize to absent parameters, so Values of the default
// state is empty and ParseFilterState(f.Values()) == f for all valid states.
func (f FilterState) Values() url.Values {
	q := url.Values{}

	if f.PriceMin != PriceMinDefault {
		q.Set("priceMin", strconv.Itoa(f.PriceMin))
	}
	if f.PriceMax != PriceMaxDefault {
		q.Set("priceMax", strconv.Itoa(f.PriceMax))
	}
	if f.Rating > 0 {
		q.Set("rating", strconv.Itoa(f.Rating))
	}

	setTokens(q, FacetCategories, f.Categories)
	setTokens(q, FacetBrands, f.Brands)
	setTokens(q, FacetColors, f.Colors)
	setTokens(q, FacetMemory, f.Memory)
	setTokens(q, FacetScreenSize, f.ScreenSizes)
	setTokens(q, FacetCondition, f.Conditions)

	return q
}

// SetPriceMin sets the lower price bound, pushing the upper bound up if needed
func (f FilterState) SetPriceMin(v int) FilterState {
	f.PriceMin = clampPrice(v)
	if f.PriceMax < f.PriceMin {
		f.PriceMax = f.PriceMin
	}
	return f
}

// SetPriceMax sets the upper price bound, pushing the lower bound down if needed
func (f FilterState) SetPriceMax(v int) FilterState {
	f.PriceMax = clampPrice(v)
	if f.PriceMin > f.PriceMax {
		f.PriceMin = f.PriceMax
	}
	return f
}

// SetRating sets the minimum rating threshold; 0 disables the constraint
func (f FilterState) SetRating(v int) FilterState {
	if v < 0 {
		v = 0
	}
	f.Rating = v
	return f
}

// SetFacet replaces a whole multi-select facet; unknown keys are ignored
func (f FilterState) SetFacet(key string, values []string) FilterState {
	if sel := f.facet(key); sel != nil {
		*sel = values
	}
	return f
}

// Toggle flips membership of value in the named multi-select facet
func (f FilterState) Toggle(key, value string) FilterState {
	sel := f.facet(key)
	if sel == nil {
		return f
	}

	for i, v := range *sel {
		if v == value {
			updated := make([]string, 0, len(*sel)-1)
			updated = append(updated, (*sel)[:i]...)
			updated = append(updated, (*sel)[i+1:]...)
			if len(updated) == 0 {
				updated = nil
			}
			*sel = updated
			return f
		}
	}
	*sel = append(append([]string(nil), *sel...), value)
	return f
}

// Reset clears every constraint
func (f FilterState) Reset() FilterState {
	return DefaultFilterState()
}

// Matches reports whether a single product satisfies every active constraint.
// An empty facet selection places no constraint.
func (f FilterState) Matches(p Product) bool {
	if p.Price < float64(f.PriceMin) || p.Price > float64(f.PriceMax) {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
		return false
	}
	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}
	if f.Rating > 0 && p.Rating < float64(f.Rating) {
		return false
	}
	if len(f.Colors) > 0 && !contains(f.Colors, p.Color) {
		return false
	}
	if len(f.Memory) > 0 && !contains(f.Memory, p.Memory) {
		return false
	}
	if len(f.ScreenSizes) > 0 && !contains(f.ScreenSizes, p.ScreenSize) {
		return false
	}
	if len(f.Conditions) > 0 && !contains(f.Conditions, string(p.Condition)) {
		return false
	}
	return true
}

// Apply returns the products satisfying the current state, preserving order
func (f FilterState) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ActiveCount returns the number of non-default selections, for a UI badge
func (f FilterState) ActiveCount() int {
	count := 0
	if f.PriceMin > PriceMinDefault {
		count++
	}
	if f.PriceMax < PriceMaxDefault {
		count++
	}
	if f.Rating > 0 {
		count++
	}
	count += len(f.Categories)
	count += len(f.Brands)
	count += len(f.Colors)
	count += len(f.Memory)
	count += len(f.ScreenSizes)
	count += len(f.Conditions)
	return count
}

func (f *FilterState) facet(key string) *[]string {
	switch key {
	case FacetCategories:
		return &f.Categories
	case FacetBrands:
		return &f.Brands
	case FacetColors:
		return &f.Colors
	case FacetMemory:
		return &f.Memory
	case FacetScreenSize:
		return &f.ScreenSizes
	case FacetCondition:
		return &f.Conditions
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func clampPrice(v int) int {
	if v < PriceMinDefault {
		return PriceMinDefault
	}
	if v > PriceMaxDefault {
		return PriceMaxDefault
	}
	return v
}

func intParam(q url.Values, key string, def int) int {
	raw := q.Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func tokensParam(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	var tokens []string
	for _, t := range strings.Split(raw, ",") {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func setTokens(q url.Values, key string, tokens []string) {
	if len(tokens) > 0 {
		q.Set(key, strings.Join(tokens, ","))
	}
}
