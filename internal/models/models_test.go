package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategoriesKeepOrder(t *testing.T) {
	data, err := json.Marshal(DefaultCategories())
	require.NoError(t, err)
	assert.Equal(t, `{"WOMEN":{"sub":[]},"CURVE":{"sub":[]},"MEN":{"sub":[]},"KIDS":{"sub":[]},"BEAUTY":{"sub":[]}}`, string(data))
}

func TestCategoryMapRoundTripPreservesOrder(t *testing.T) {
	in := `{"MEN":{"sub":["Shirts"]},"BEAUTY":{"sub":null},"WOMEN":{"sub":["Dresses","Tops"]}}`

	var m CategoryMap
	require.NoError(t, json.Unmarshal([]byte(in), &m))
	assert.Equal(t, []string{"MEN", "BEAUTY", "WOMEN"}, m.Names())

	beauty, ok := m.Get("BEAUTY")
	require.True(t, ok)
	assert.Equal(t, []string{}, beauty.Sub)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"MEN":{"sub":["Shirts"]},"BEAUTY":{"sub":[]},"WOMEN":{"sub":["Dresses","Tops"]}}`, string(out))
}

func TestCategoryMapRejectsArray(t *testing.T) {
	var m CategoryMap
	assert.Error(t, json.Unmarshal([]byte(`["WOMEN","MEN"]`), &m))
}

func TestCategorySubs(t *testing.T) {
	c := Category{Sub: []string{"Dresses"}}

	assert.False(t, c.AddSub("DRESSES"))
	assert.True(t, c.AddSub("Tops"))
	assert.Equal(t, []string{"Dresses", "Tops"}, c.Sub)

	c.RemoveSub("dresses")
	assert.Equal(t, []string{"Tops"}, c.Sub)
}

func TestProductJSONOmitsMissingOriginalPrice(t *testing.T) {
	data, err := json.Marshal(Product{ID: 1, Price: 19.99, Colors: []ColorVariant{}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "originalPrice")
	assert.Contains(t, string(data), `"colors":[]`)
}

func TestProductHelpers(t *testing.T) {
	was := 30.0
	p := Product{
		Price:         20,
		OriginalPrice: &was,
		Colors: []ColorVariant{
			{Name: "Black", Images: []ImageRef{{URL: "/uploads/a.jpg"}, {URL: ""}}},
			{Name: "Red", Images: []ImageRef{{URL: "/uploads/b.jpg"}}},
		},
	}
	assert.True(t, p.HasDiscount())
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, p.ImageURLs())

	p.OriginalPrice = nil
	assert.False(t, p.HasDiscount())
}

func TestSettingsUpdatesKeepAbsentFields(t *testing.T) {
	cfg := PaymentConfig{PaystackPublicKey: "pk_old", FlutterwavePublicKey: "fw_old"}
	key := "pk_new"
	PaymentConfigUpdate{PaystackPublicKey: &key}.Apply(&cfg)
	assert.Equal(t, "pk_new", cfg.PaystackPublicKey)
	assert.Equal(t, "fw_old", cfg.FlutterwavePublicKey)

	chat := LiveChatConfig{LiveChatProvider: "tawk", IsEnabled: true}
	off := false
	LiveChatConfigUpdate{IsEnabled: &off}.Apply(&chat)
	assert.False(t, chat.IsEnabled)
	assert.Equal(t, "tawk", chat.LiveChatProvider)
}
