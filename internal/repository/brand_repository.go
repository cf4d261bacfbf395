package repository

import (
	"context"
	"strings"

	json "github.com/goccy/go-json"

	"storefront/internal/coerce"
	"storefront/internal/models"
)

// BrandRepository maneja las tarjetas "Shop by Brand" y los banners de
// categoría de la portada
type BrandRepository struct {
	store *Store
}

func NewBrandRepository(store *Store) *BrandRepository {
	return &BrandRepository{store: store}
}

func (r *BrandRepository) List(ctx context.Context) ([]json.RawMessage, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return decodeList(doc, KeyBrands)
}

// Update busca la marca por etiqueta sin importar mayúsculas y aplica los
// campos no vacíos. Las llaves desconocidas de la marca se conservan.
func (r *BrandRepository) Update(ctx context.Context, label string, update models.BrandUpdate) (models.Brand, error) {
	var brand models.Brand
	err := r.store.Update(ctx, func(doc *Document) error {
		items, err := decodeList(doc, KeyBrands)
		if err != nil {
			return err
		}
		i := indexByLabel(items, label)
		if i < 0 {
			return notFound("brand", label)
		}

		fields := decodeFields(items[i])
		brand = models.Brand{
			Label: coerce.String(fields["label"]),
			Image: coerce.String(fields["image"]),
			Link:  coerce.String(fields["link"]),
		}
		update.Apply(&brand)
		fields["label"] = brand.Label
		fields["image"] = brand.Image
		fields["link"] = brand.Link

		raw, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		items[i] = raw
		return doc.Set(KeyBrands, items)
	})
	if err != nil {
		return models.Brand{}, err
	}
	return brand, nil
}

func indexByLabel(items []json.RawMessage, label string) int {
	label = strings.ToUpper(label)
	for i, raw := range items {
		var rec struct {
			Label any `json:"label"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if s, ok := rec.Label.(string); ok && strings.ToUpper(s) == label {
			return i
		}
	}
	return -1
}

// Banner devuelve la imagen del banner de una categoría, "" si no hay
func (r *BrandRepository) Banner(ctx context.Context, category string) (models.Banner, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return models.Banner{}, err
	}
	banners := bannerMap(doc)
	return models.Banner{Image: coerce.String(banners[strings.ToUpper(category)])}, nil
}

// SetBanner guarda la imagen del banner. Sin imagen nueva se conserva la
// actual y la llave queda creada igual.
func (r *BrandRepository) SetBanner(ctx context.Context, category, image string) (models.Banner, error) {
	key := strings.ToUpper(category)
	var banner models.Banner
	err := r.store.Update(ctx, func(doc *Document) error {
		banners := bannerMap(doc)
		if image == "" {
			image = coerce.String(banners[key])
		}
		banners[key] = image
		banner = models.Banner{Image: image}
		return doc.Set(KeyBanners, banners)
	})
	if err != nil {
		return models.Banner{}, err
	}
	return banner, nil
}

func bannerMap(doc *Document) map[string]any {
	var banners map[string]any
	if err := doc.Decode(KeyBanners, &banners); err != nil || banners == nil {
		return map[string]any{}
	}
	return banners
}
