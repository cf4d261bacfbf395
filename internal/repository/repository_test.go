package repository

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestProductCreateNormalizesAndPersists(t *testing.T) {
	store, path := newFileStore(t, Options{})
	repo := NewProductRepository(store)
	repo.now = fixedClock(1700000000000)
	ctx := context.Background()

	created, err := repo.Create(ctx, map[string]any{
		"name":          "Dress",
		"category":      "WOMEN",
		"price":         19.99,
		"originalPrice": nil,
		"colors": []any{
			map[string]any{"name": "Red", "images": []any{map[string]any{"url": "/uploads/1.jpg"}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), created.ID)
	assert.Nil(t, created.OriginalPrice)
	assert.Equal(t, catalog.DefaultColorValue, created.Colors[0].Value)

	fields := readRaw(t, path)
	var products []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(fields[KeyProducts], &products))
	require.Len(t, products, 1)
	assert.Equal(t, "19.99", string(products[0]["price"]))
	assert.NotContains(t, products[0], "originalPrice")
	assert.Equal(t, "1700000000000", string(products[0]["id"]))
}

func TestProductUpdateOverlaysStoredRecord(t *testing.T) {
	store, _ := newFileStore(t, Options{})
	repo := NewProductRepository(store)
	repo.now = fixedClock(42)
	ctx := context.Background()

	_, err := repo.Create(ctx, map[string]any{"name": "Shirt", "price": 10.0, "originalPrice": 15.0})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, 42, map[string]any{"price": 12.5, "originalPrice": nil})
	require.NoError(t, err)
	assert.Equal(t, "Shirt", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Nil(t, updated.OriginalPrice)

	_, err = repo.Update(ctx, 7, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductDeleteReturnsRemovedProduct(t *testing.T) {
	store, _ := newFileStore(t, Options{})
	repo := NewProductRepository(store)
	ctx := context.Background()

	repo.now = fixedClock(1)
	_, err := repo.Create(ctx, map[string]any{"name": "A"})
	require.NoError(t, err)
	repo.now = fixedClock(2)
	_, err = repo.Create(ctx, map[string]any{"name": "B"})
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", removed.Name)

	all, err := repo.FindAll(ctx, catalog.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B", all[0].Name)

	_, err = repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductsNotArrayIsCorrupt(t *testing.T) {
	store := NewStore(&memBackend{data: []byte(`{"products":{"a":1}}`)}, Options{})

	_, err := NewProductRepository(store).FindAll(context.Background(), catalog.Filter{})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestProductFindAllFiltersAndSearch(t *testing.T) {
	backend := &memBackend{data: []byte(`{"products":[
		{"id":1,"name":"Silk Dress","category":"WOMEN","subCategory":"Dresses","showOnHomePage":true},
		{"id":2,"name":"Jeans","category":"MEN","description":"blue denim"},
		"garbage"
	]}`)}
	repo := NewProductRepository(NewStore(backend, Options{}))
	ctx := context.Background()

	all, err := repo.FindAll(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	women, err := repo.FindAll(ctx, catalog.Filter{Category: "women"})
	require.NoError(t, err)
	require.Len(t, women, 1)
	assert.Equal(t, int64(1), women[0].ID)

	found, err := repo.Search(ctx, "DENIM")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Jeans", found[0].Name)

	none, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCategoriesLazyMigrationIsPersisted(t *testing.T) {
	backend := &memBackend{data: []byte(`{"categories":["WOMEN"]}`)}
	repo := NewCategoryRepository(NewStore(backend, Options{}))
	ctx := context.Background()

	categories, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategoryNames, categories.Names())
	assert.Equal(t, 1, backend.saves)

	// ya migrado, no vuelve a escribir
	_, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.saves)
}

func TestCategorySubcategories(t *testing.T) {
	repo := NewCategoryRepository(NewStore(&memBackend{}, Options{}))
	ctx := context.Background()

	categories, err := repo.AddSub(ctx, "women", "Dresses")
	require.NoError(t, err)
	women, ok := categories.Get("WOMEN")
	require.True(t, ok)
	assert.Equal(t, []string{"Dresses"}, women.Sub)

	categories, err = repo.AddSub(ctx, "WOMEN", "dresses")
	require.NoError(t, err)
	women, _ = categories.Get("WOMEN")
	assert.Len(t, women.Sub, 1)

	categories, err = repo.RemoveSub(ctx, "Women", "DRESSES")
	require.NoError(t, err)
	women, _ = categories.Get("WOMEN")
	assert.Empty(t, women.Sub)

	_, err = repo.AddSub(ctx, "SHOES", "Boots")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoriesSeededOnFreshStore(t *testing.T) {
	backend := &memBackend{}
	repo := NewCategoryRepository(NewStore(backend, Options{}))

	categories, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategories().Names(), categories.Names())
	assert.Equal(t, 1, backend.saves)
}

func TestStoredEmptyCategoryMapIsKept(t *testing.T) {
	backend := &memBackend{data: []byte(`{"categories":{}}`)}
	repo := NewCategoryRepository(NewStore(backend, Options{}))

	categories, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories.Names())
	assert.Equal(t, 0, backend.saves)
}

func TestCategoryNotFoundStillPersistsMigration(t *testing.T) {
	backend := &memBackend{data: []byte(`{"categories":null}`)}
	repo := NewCategoryRepository(NewStore(backend, Options{}))

	_, err := repo.AddSub(context.Background(), "SHOES", "Boots")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, backend.saves)
}

func TestSettingsMigrationKeepsSiblings(t *testing.T) {
	backend := &memBackend{data: []byte(`{"config":{"payment":"broken","theme":"dark"}}`)}
	repo := NewSettingsRepository(NewStore(backend, Options{}))
	ctx := context.Background()

	payment, err := repo.PaymentConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentConfig{}, payment)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(backend.data, &doc))
	assert.JSONEq(t, `"dark"`, string(doc[KeyConfig]["theme"]))
	assert.Contains(t, doc[KeyConfig], "payment")

	key := "pk_live"
	enabled := true
	payment, err = repo.UpdatePaymentConfig(ctx, models.PaymentConfigUpdate{PaystackPublicKey: &key})
	require.NoError(t, err)
	assert.Equal(t, "pk_live", payment.PaystackPublicKey)

	chat, err := repo.UpdateLiveChatConfig(ctx, models.LiveChatConfigUpdate{IsEnabled: &enabled})
	require.NoError(t, err)
	assert.True(t, chat.IsEnabled)

	payment, err = repo.PaymentConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pk_live", payment.PaystackPublicKey)
}

func TestSettingsConfigNotObject(t *testing.T) {
	backend := &memBackend{data: []byte(`{"config":[1,2]}`)}
	repo := NewSettingsRepository(NewStore(backend, Options{}))

	chat, err := repo.LiveChatConfig(context.Background())
	require.NoError(t, err)
	assert.False(t, chat.IsEnabled)
	assert.JSONEq(t, `{"livechat":{"liveChatCode":"","liveChatProvider":"","isEnabled":false}}`,
		string(mustField(t, backend.data, KeyConfig)))
}

func mustField(t *testing.T, data []byte, key string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	return fields[key]
}

func TestOrdersLifecycle(t *testing.T) {
	backend := &memBackend{data: []byte(`{"orders":"oops"}`)}
	repo := NewOrderRepository(NewStore(backend, Options{}))
	ctx := context.Background()

	repo.now = fixedClock(1000)
	first, err := repo.Create(ctx, models.OrderInput{Email: "a@x.io", Items: []any{"x"}, Subtotal: "12"})
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", first.PaymentMethod)
	assert.Equal(t, map[string]any{}, first.Delivery)
	assert.Equal(t, 0.0, first.Subtotal)
	assert.Equal(t, "1970-01-01T00:00:01.000Z", first.CreatedAt)

	repo.now = fixedClock(2000)
	_, err = repo.Create(ctx, models.OrderInput{Email: "b@x.io", Items: []any{"y"}, Subtotal: 30.5, PaymentMethod: "CARD"})
	require.NoError(t, err)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Contains(t, string(orders[0]), "b@x.io")
	assert.Contains(t, string(orders[1]), "a@x.io")

	require.NoError(t, repo.Delete(ctx, 1000))
	assert.ErrorIs(t, repo.Delete(ctx, 1000), ErrNotFound)

	orders, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderDeleteRepairsBeforeNotFound(t *testing.T) {
	backend := &memBackend{data: []byte(`{"orders":null}`)}
	repo := NewOrderRepository(NewStore(backend, Options{}))

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrNotFound)
	assert.JSONEq(t, `[]`, string(mustField(t, backend.data, KeyOrders)))
}

func TestUsersConflictAndDelete(t *testing.T) {
	backend := &memBackend{data: []byte(`{"users":[{"id":1700000000000,"email":"old@x.io"}]}`)}
	repo := NewUserRepository(NewStore(backend, Options{}))
	repo.now = fixedClock(5)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.UserInput{Username: "dup", Email: "old@x.io"})
	assert.ErrorIs(t, err, ErrConflict)

	// la comparación es exacta
	user, err := repo.Create(ctx, models.UserInput{Username: "new", Email: "OLD@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "5", user.ID)

	require.NoError(t, repo.Delete(ctx, "1700000000000"))
	require.NoError(t, repo.Delete(ctx, "5"))
	assert.ErrorIs(t, repo.Delete(ctx, "5"), ErrNotFound)
}

func TestBrandsAndBanners(t *testing.T) {
	backend := &memBackend{data: []byte(`{"brands":[{"label":"Nike","image":"/a.png","link":"/n","extra":1}]}`)}
	repo := NewBrandRepository(NewStore(backend, Options{}))
	ctx := context.Background()

	brand, err := repo.Update(ctx, "NIKE", models.BrandUpdate{Link: "/nike"})
	require.NoError(t, err)
	assert.Equal(t, models.Brand{Label: "Nike", Image: "/a.png", Link: "/nike"}, brand)

	brands, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.JSONEq(t, `{"label":"Nike","image":"/a.png","link":"/nike","extra":1}`, string(brands[0]))

	_, err = repo.Update(ctx, "adidas", models.BrandUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)

	banner, err := repo.Banner(ctx, "women")
	require.NoError(t, err)
	assert.Equal(t, "", banner.Image)

	banner, err = repo.SetBanner(ctx, "women", "/uploads/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/b.jpg", banner.Image)

	// sin imagen nueva se conserva la actual
	banner, err = repo.SetBanner(ctx, "WOMEN", "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/b.jpg", banner.Image)

	banner, err = repo.Banner(ctx, "Women")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/b.jpg", banner.Image)
}
