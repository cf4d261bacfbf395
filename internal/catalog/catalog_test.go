package catalog

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

type formValues map[string]string

func (f formValues) Value(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(map[string]any{})

	assert.Equal(t, int64(0), p.ID)
	assert.Equal(t, "", p.Name)
	assert.Equal(t, 0.0, p.Price)
	assert.Nil(t, p.OriginalPrice)
	assert.False(t, p.IsOutOfStock)
	assert.NotNil(t, p.Colors)
	assert.Empty(t, p.Colors)
}

func TestNormalizeCoercesTypes(t *testing.T) {
	p := Normalize(decode(t, `{
		"id": 1718000000000,
		"name": 12,
		"category": "WOMEN",
		"price": "19.99",
		"originalPrice": "abc",
		"isOutOfStock": "yes",
		"showOnHomePage": 0,
		"colors": [
			{"name": "Black", "images": [{"url": "/uploads/a.jpg"}, "junk"]},
			{"value": "", "images": "nope"},
			"stray"
		],
		"extra": true
	}`))

	assert.Equal(t, int64(1718000000000), p.ID)
	assert.Equal(t, "", p.Name)
	assert.Equal(t, "WOMEN", p.Category)
	assert.Equal(t, 0.0, p.Price, "string prices are converted at the boundary, not here")
	assert.Nil(t, p.OriginalPrice)
	assert.True(t, p.IsOutOfStock)
	assert.False(t, p.ShowOnHomePage)

	require.Len(t, p.Colors, 3)
	assert.Equal(t, models.ColorVariant{Name: "Black", Value: "#000000", Images: []models.ImageRef{{URL: "/uploads/a.jpg"}}}, p.Colors[0])
	assert.Equal(t, models.ColorVariant{Name: "", Value: "#000000", Images: []models.ImageRef{}}, p.Colors[1])
	assert.Equal(t, "#000000", p.Colors[2].Value)
}

func TestNormalizeTreatsNaNAsMissing(t *testing.T) {
	p := Normalize(map[string]any{"price": math.NaN(), "originalPrice": math.NaN()})
	assert.Equal(t, 0.0, p.Price)
	assert.Nil(t, p.OriginalPrice)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"id": 5, "name": "Dress", "price": 10.5, "originalPrice": 20, "isOutOfStock": 1, "colors": [{"name": "Red", "value": "#ff0000", "images": [{"url": "/uploads/1.jpg", "alt": "x"}]}]}`,
		`{"colors": "not-an-array", "showOnHomePage": "true"}`,
	}
	for _, raw := range inputs {
		once := Normalize(decode(t, raw))
		twice := Normalize(Fields(once))
		assert.Equal(t, once, twice, raw)

		// también tras pasar por JSON, como ocurre al guardar y releer
		data, err := json.Marshal(once)
		require.NoError(t, err)
		assert.Equal(t, once, Normalize(decode(t, string(data))), raw)
	}
}

func TestColorIndex(t *testing.T) {
	tests := []struct {
		field string
		idx   int
		ok    bool
	}{
		{"images_0", 0, true},
		{"images_12", 12, true},
		{"images_01", 0, false},
		{"images_-1", 0, false},
		{"images_", 0, false},
		{"image_0", 0, false},
		{"bannerImage", 0, false},
	}
	for _, tt := range tests {
		idx, ok := ColorIndex(tt.field)
		assert.Equal(t, tt.ok, ok, tt.field)
		assert.Equal(t, tt.idx, idx, tt.field)
	}
	assert.Equal(t, "images_3", ImageField(3))
}

func TestParseColorsFallsBackToEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json", `{"name":"Black"}`, `[{"name":`} {
		colors := ParseColors(raw)
		assert.NotNil(t, colors, raw)
		assert.Empty(t, colors, raw)
	}
}

func TestMergeColorsAppendsUploadsAfterExisting(t *testing.T) {
	descriptors := ParseColors(`[{"name":"Black","images":[{"url":"/uploads/a.jpg"}]}]`)
	merged := MergeColors(descriptors, []Upload{{ColorIndex: 0, URL: "/uploads/b.jpg"}})

	p := Normalize(map[string]any{"colors": merged})
	require.Len(t, p.Colors, 1)
	assert.Equal(t, []models.ImageRef{{URL: "/uploads/a.jpg"}, {URL: "/uploads/b.jpg"}}, p.Colors[0].Images)
}

func TestMergeColorsByPosition(t *testing.T) {
	descriptors := ParseColors(`[{"name":"Black","value":"#000"},{"name":"Red","value":"#f00","images":"bad"},{"name":"Blue"}]`)
	uploads := []Upload{
		{ColorIndex: 1, URL: "/uploads/r1.jpg"},
		{ColorIndex: 0, URL: "/uploads/b1.jpg"},
		{ColorIndex: 1, URL: "/uploads/r2.jpg"},
		{ColorIndex: 7, URL: "/uploads/orphan.jpg"},
	}

	merged := MergeColors(descriptors, uploads)
	require.Len(t, merged, 3)

	red := merged[1].(map[string]any)
	assert.Equal(t, "Red", red["name"])
	assert.Equal(t, "#f00", red["value"])
	assert.Equal(t, []any{
		map[string]any{"url": "/uploads/r1.jpg"},
		map[string]any{"url": "/uploads/r2.jpg"},
	}, red["images"])

	// un color sin imágenes no se rechaza
	blue := merged[2].(map[string]any)
	assert.Equal(t, []any{}, blue["images"])

	// el descriptor original no se modifica
	_, had := descriptors[0]["images"]
	assert.False(t, had)
}

func TestFormFieldsConvertsAtBoundary(t *testing.T) {
	fields := FormFields(formValues{
		"name":           "Maxi Dress",
		"category":       "women",
		"price":          "19.99",
		"originalPrice":  "",
		"isOutOfStock":   "false",
		"showOnHomePage": "true",
	}, []any{})

	p := Normalize(fields)
	assert.Equal(t, "Maxi Dress", p.Name)
	assert.Equal(t, 19.99, p.Price)
	assert.Nil(t, p.OriginalPrice)
	assert.False(t, p.IsOutOfStock)
	assert.True(t, p.ShowOnHomePage)
	assert.Equal(t, "", p.SubCategory)
}

func TestFormFieldsInvalidNumbers(t *testing.T) {
	p := Normalize(FormFields(formValues{"price": "free", "originalPrice": "n/a"}, nil))
	assert.Equal(t, 0.0, p.Price)
	assert.Nil(t, p.OriginalPrice)

	p = Normalize(FormFields(formValues{"price": "10", "originalPrice": "25.50"}, nil))
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 25.5, *p.OriginalPrice)
	assert.True(t, p.HasDiscount())
}

func TestOverlayReplacesStoredFields(t *testing.T) {
	stored := Fields(models.Product{ID: 42, Name: "Old", Price: 5, Colors: []models.ColorVariant{}})
	changes := FormFields(formValues{"price": "7"}, []any{})

	p := Normalize(Overlay(stored, changes))
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "", p.Name, "absent form fields clear the stored value")
	assert.Equal(t, 7.0, p.Price)
	assert.Equal(t, "Old", stored["name"])
}

func TestFilter(t *testing.T) {
	products := []models.Product{
		{ID: 1, Category: "WOMEN", SubCategory: "Dresses", ShowOnHomePage: true},
		{ID: 2, Category: "Women", SubCategory: "Tops"},
		{ID: 3, Category: "MEN", ShowOnHomePage: true},
	}

	lower := Filter{Category: "women"}.Apply(products)
	upper := Filter{Category: "WOMEN"}.Apply(products)
	assert.Equal(t, lower, upper)
	assert.Len(t, lower, 2)

	assert.Len(t, Filter{Category: "women", SubCategory: "DRESSES"}.Apply(products), 1)
	assert.Len(t, Filter{HomeOnly: true}.Apply(products), 2)
	assert.Len(t, Filter{}.Apply(products), 3)
	assert.Equal(t, Filter{Category: "women"}.Key(), Filter{Category: "WOMEN"}.Key())
}

func TestSearch(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Silk Scarf", Category: "WOMEN"},
		{ID: 2, Name: "Boots", Category: "MEN", Description: "Leather, SILKY finish"},
		{ID: 3, Name: "Lipstick", Category: "BEAUTY"},
	}

	found := Search(products, "silk")
	require.Len(t, found, 2)
	assert.Equal(t, int64(1), found[0].ID)
	assert.Equal(t, int64(2), found[1].ID)

	assert.Len(t, Search(products, "beauty"), 1)
	assert.Equal(t, []models.Product{}, Search(products, ""))
}

func TestMergeDuplicates(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Dress ", Category: "WOMEN", Colors: []models.ColorVariant{{Name: "Black"}}},
		{ID: 2, Name: "Shirt", Category: "MEN", Colors: []models.ColorVariant{{Name: "White"}}},
		{ID: 3, Name: "dress", Category: "women", Colors: []models.ColorVariant{{Name: "Red"}}},
	}

	merged, absorbed := MergeDuplicates(products)
	assert.Equal(t, 1, absorbed)
	require.Len(t, merged, 2)
	assert.Equal(t, int64(1), merged[0].ID)
	assert.Equal(t, []models.ColorVariant{{Name: "Black"}, {Name: "Red"}}, merged[0].Colors)
	assert.Equal(t, int64(2), merged[1].ID)

	// la entrada original no se modifica
	assert.Len(t, products[0].Colors, 1)
}
