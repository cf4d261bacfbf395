package repository

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"

	"storefront/internal/catalog"
	"storefront/internal/coerce"
	"storefront/internal/models"
)

type ProductRepository struct {
	store *Store
	now   func() time.Time
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{
		store: store,
		now:   time.Now,
	}
}

// FindAll devuelve los productos normalizados que cumplen el filtro
func (r *ProductRepository) FindAll(ctx context.Context, filter catalog.Filter) ([]models.Product, error) {
	products, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(products), nil
}

// Search busca por nombre, categoría o descripción
func (r *ProductRepository) Search(ctx context.Context, q string) ([]models.Product, error) {
	if q == "" {
		return []models.Product{}, nil
	}
	products, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Search(products, q), nil
}

func (r *ProductRepository) all(ctx context.Context) ([]models.Product, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	items, err := decodeList(doc, KeyProducts)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(items))
	for _, raw := range items {
		products = append(products, catalog.Normalize(decodeFields(raw)))
	}
	return products, nil
}

// Create asigna el id de creación, normaliza y agrega el producto
func (r *ProductRepository) Create(ctx context.Context, fields map[string]any) (models.Product, error) {
	fields = catalog.Overlay(fields, map[string]any{"id": float64(r.now().UnixMilli())})
	product := catalog.Normalize(fields)

	err := r.store.Update(ctx, func(doc *Document) error {
		items, err := decodeList(doc, KeyProducts)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(product)
		if err != nil {
			return err
		}
		return doc.Set(KeyProducts, append(items, raw))
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update normaliza el registro guardado junto con los cambios y lo reemplaza
func (r *ProductRepository) Update(ctx context.Context, id int64, changes map[string]any) (models.Product, error) {
	var updated models.Product
	err := r.store.Update(ctx, func(doc *Document) error {
		items, err := decodeList(doc, KeyProducts)
		if err != nil {
			return err
		}
		i := indexByNumericID(items, id)
		if i < 0 {
			return notFound("product", id)
		}

		updated = catalog.Normalize(catalog.Overlay(decodeFields(items[i]), changes))
		raw, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		items[i] = raw
		return doc.Set(KeyProducts, items)
	})
	if err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// Delete elimina el producto y lo devuelve para que el llamador limpie sus imágenes
func (r *ProductRepository) Delete(ctx context.Context, id int64) (models.Product, error) {
	var removed models.Product
	err := r.store.Update(ctx, func(doc *Document) error {
		items, err := decodeList(doc, KeyProducts)
		if err != nil {
			return err
		}
		i := indexByNumericID(items, id)
		if i < 0 {
			return notFound("product", id)
		}
		removed = catalog.Normalize(decodeFields(items[i]))
		return doc.Set(KeyProducts, append(items[:i], items[i+1:]...))
	})
	if err != nil {
		return models.Product{}, err
	}
	return removed, nil
}

// Rewrite reemplaza la lista completa con el resultado de fn. Lo usan las
// tareas de mantenimiento.
func (r *ProductRepository) Rewrite(ctx context.Context, fn func([]models.Product) []models.Product) error {
	return r.store.Update(ctx, func(doc *Document) error {
		items, err := decodeList(doc, KeyProducts)
		if err != nil {
			return err
		}
		products := make([]models.Product, 0, len(items))
		for _, raw := range items {
			products = append(products, catalog.Normalize(decodeFields(raw)))
		}
		return doc.Set(KeyProducts, fn(products))
	})
}

// decodeList lee una colección de primer nivel. Si falta se considera vacía;
// si no es un arreglo el documento está dañado.
func decodeList(doc *Document, key string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	err := doc.Decode(key, &items)
	if errors.Is(err, errAbsent) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, &StoreError{Op: key, Err: errors.Join(ErrCorrupt, err)}
	}
	return items, nil
}

// decodeFields interpreta un registro como objeto; lo que no es objeto queda vacío
func decodeFields(raw json.RawMessage) map[string]any {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return map[string]any{}
	}
	return fields
}

type idOnly struct {
	ID any `json:"id"`
}

func indexByNumericID(items []json.RawMessage, id int64) int {
	for i, raw := range items {
		var rec idOnly
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if n, ok := coerce.Int64(rec.ID); ok && n == id {
			return i
		}
	}
	return -1
}

func indexByStringID(items []json.RawMessage, id string) int {
	for i, raw := range items {
		var rec idOnly
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.ID != nil && coerce.IDString(rec.ID) == id {
			return i
		}
	}
	return -1
}
