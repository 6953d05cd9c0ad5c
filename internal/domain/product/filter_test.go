// internal/domain/product/filter_test.go
package product

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Product {
	return []Product{
		{ID: "p1", Name: "Aurora X5 Pro", Price: 999, Category: "Smartphones", Brand: "Aurora", Color: "Black", Memory: "256GB", ScreenSize: "6.7\"", Condition: ConditionNew, Rating: 4.8},
		{ID: "p2", Name: "Aurora X5", Price: 699, Category: "Smartphones", Brand: "Aurora", Color: "Blue", Memory: "128GB", ScreenSize: "6.1\"", Condition: ConditionNew, Rating: 4.6},
		{ID: "p3", Name: "Nimbus Book 14", Price: 1299, Category: "Laptops", Brand: "Nimbus", Color: "Silver", Memory: "512GB", ScreenSize: "14\"", Condition: ConditionNew, Rating: 4.7},
		{ID: "p4", Name: "Vela Tab S", Price: 449, Category: "Tablets", Brand: "Vela", Color: "Gray", Memory: "128GB", ScreenSize: "11\"", Condition: ConditionNew, Rating: 4.5},
		{ID: "p5", Name: "Vela Tab Mini", Price: 249, Category: "Tablets", Brand: "Vela", Color: "White", Memory: "64GB", ScreenSize: "8\"", Condition: ConditionLikeNew, Rating: 4.3},
	}
}

func TestParseFilterState(t *testing.T) {
	t.Run("empty query yields default state", func(t *testing.T) {
		f := ParseFilterState(url.Values{})
		assert.Equal(t, DefaultFilterState(), f)
		assert.Equal(t, 0, f.ActiveCount())
	})

	t.Run("parses facets and price bounds", func(t *testing.T) {
		q, err := url.ParseQuery("priceMin=100&priceMax=500&categories=Tablets,Smartphones&rating=4")
		require.NoError(t, err)

		f := ParseFilterState(q)
		assert.Equal(t, 100, f.PriceMin)
		assert.Equal(t, 500, f.PriceMax)
		assert.Equal(t, []string{"Tablets", "Smartphones"}, f.Categories)
		assert.Equal(t, 4, f.Rating)
	})

	t.Run("clamps prices to catalog bounds", func(t *testing.T) {
		q, _ := url.ParseQuery("priceMin=-50&priceMax=999999")
		f := ParseFilterState(q)
		assert.Equal(t, PriceMinDefault, f.PriceMin)
		assert.Equal(t, PriceMaxDefault, f.PriceMax)
	})

	t.Run("normalizes inverted price range", func(t *testing.T) {
		q, _ := url.ParseQuery("priceMin=800&priceMax=200")
		f := ParseFilterState(q)
		assert.Equal(t, 800, f.PriceMin)
		assert.Equal(t, 800, f.PriceMax)
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		q, _ := url.ParseQuery("priceMin=abc&rating=x")
		f := ParseFilterState(q)
		assert.Equal(t, PriceMinDefault, f.PriceMin)
		assert.Equal(t, 0, f.Rating)
	})
}

func TestFilterStateRoundTrip(t *testing.T) {
	t.Run("default state serializes to empty query", func(t *testing.T) {
		assert.Empty(t, DefaultFilterState().Values().Encode())
	})

	t.Run("parse of values reproduces the state", func(t *testing.T) {
		f := DefaultFilterState().
			SetPriceMin(100).
			SetPriceMax(1500).
			SetRating(4).
			SetFacet(FacetCategories, []string{"Tablets"}).
			SetFacet(FacetBrands, []string{"Vela", "Aurora"})

		again := ParseFilterState(f.Values())
		assert.Equal(t, f, again)
	})
}

func TestFilterStateSetters(t *testing.T) {
	t.Run("raising min above max pushes max up", func(t *testing.T) {
		f := DefaultFilterState().SetPriceMax(300).SetPriceMin(700)
		assert.Equal(t, 700, f.PriceMin)
		assert.Equal(t, 700, f.PriceMax)
	})

	t.Run("lowering max below min pushes min down", func(t *testing.T) {
		f := DefaultFilterState().SetPriceMin(700).SetPriceMax(300)
		assert.Equal(t, 300, f.PriceMin)
		assert.Equal(t, 300, f.PriceMax)
	})

	t.Run("toggle flips membership", func(t *testing.T) {
		f := DefaultFilterState().Toggle(FacetCategories, "Tablets")
		assert.Equal(t, []string{"Tablets"}, f.Categories)

		f = f.Toggle(FacetCategories, "Laptops")
		assert.Equal(t, []string{"Tablets", "Laptops"}, f.Categories)

		f = f.Toggle(FacetCategories, "Tablets")
		assert.Equal(t, []string{"Laptops"}, f.Categories)

		f = f.Toggle(FacetCategories, "Laptops")
		assert.Nil(t, f.Categories)
	})

	t.Run("toggle on unknown facet is a no-op", func(t *testing.T) {
		f := DefaultFilterState().Toggle("nope", "x")
		assert.Equal(t, DefaultFilterState(), f)
	})

	t.Run("reset clears everything", func(t *testing.T) {
		f := DefaultFilterState().
			SetPriceMax(300).
			SetRating(3).
			Toggle(FacetBrands, "Vela")
		assert.Equal(t, DefaultFilterState(), f.Reset())
	})
}

func TestFilterStateMatches(t *testing.T) {
	p := testCatalog()[0] // Aurora X5 Pro

	t.Run("facet membership per field", func(t *testing.T) {
		cases := []struct {
			name string
			f    FilterState
			want bool
		}{
			{"category in selection", DefaultFilterState().SetFacet(FacetCategories, []string{"Smartphones"}), true},
			{"category not in selection", DefaultFilterState().SetFacet(FacetCategories, []string{"Laptops"}), false},
			{"brand in selection", DefaultFilterState().SetFacet(FacetBrands, []string{"Nimbus", "Aurora"}), true},
			{"brand not in selection", DefaultFilterState().SetFacet(FacetBrands, []string{"Vela"}), false},
			{"color in selection", DefaultFilterState().SetFacet(FacetColors, []string{"Black"}), true},
			{"memory not in selection", DefaultFilterState().SetFacet(FacetMemory, []string{"64GB"}), false},
			{"screen size in selection", DefaultFilterState().SetFacet(FacetScreenSize, []string{"6.7\""}), true},
			{"condition not in selection", DefaultFilterState().SetFacet(FacetCondition, []string{string(ConditionOpenBox)}), false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, tc.f.Matches(p))
			})
		}
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		f := DefaultFilterState().SetPriceMin(999).SetPriceMax(999)
		assert.True(t, f.Matches(p))

		f = DefaultFilterState().SetPriceMax(998)
		assert.False(t, f.Matches(p))
	})
}

func TestFilterStateApply(t *testing.T) {
	catalog := testCatalog()

	t.Run("default state matches everything", func(t *testing.T) {
		assert.Len(t, DefaultFilterState().Apply(catalog), len(catalog))
	})

	t.Run("facet constraints are ANDed", func(t *testing.T) {
		f := DefaultFilterState().
			SetFacet(FacetCategories, []string{"Tablets"}).
			SetPriceMax(300)

		filtered := f.Apply(catalog)
		require.Len(t, filtered, 1)
		assert.Equal(t, "Vela Tab Mini", filtered[0].Name)
	})

	t.Run("values within a facet are ORed", func(t *testing.T) {
		f := DefaultFilterState().SetFacet(FacetCategories, []string{"Tablets", "Laptops"})
		assert.Len(t, f.Apply(catalog), 3)
	})

	t.Run("rating is a minimum threshold", func(t *testing.T) {
		f := DefaultFilterState().SetRating(5)
		assert.Empty(t, f.Apply(catalog))

		f = DefaultFilterState().SetRating(4)
		assert.Len(t, f.Apply(catalog), len(catalog))
	})

	t.Run("condition facet matches", func(t *testing.T) {
		f := DefaultFilterState().SetFacet(FacetCondition, []string{string(ConditionLikeNew)})
		filtered := f.Apply(catalog)
		require.Len(t, filtered, 1)
		assert.Equal(t, "p5", filtered[0].ID)
	})

	t.Run("apply preserves input order", func(t *testing.T) {
		f := DefaultFilterState().SetFacet(FacetBrands, []string{"Aurora", "Vela"})
		filtered := f.Apply(catalog)
		require.Len(t, filtered, 4)
		assert.Equal(t, []string{"p1", "p2", "p4", "p5"}, []string{filtered[0].ID, filtered[1].ID, filtered[2].ID, filtered[3].ID})
	})
}

func TestFilterStateActiveCount(t *testing.T) {
	f := DefaultFilterState()
	assert.Equal(t, 0, f.ActiveCount())

	f = f.SetPriceMax(500)
	assert.Equal(t, 1, f.ActiveCount())

	f = f.Toggle(FacetCategories, "Tablets").Toggle(FacetCategories, "Laptops")
	assert.Equal(t, 3, f.ActiveCount())

	f = f.SetRating(4)
	assert.Equal(t, 4, f.ActiveCount())
}
