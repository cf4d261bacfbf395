package repository

import (
	"context"
	"strings"

	"storefront/internal/models"
)

type CategoryRepository struct {
	store *Store
}

func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// structuredCategories devuelve las categorías del documento. Si faltan o no
// tienen la forma esperada se reemplazan por las cinco categorías por defecto
// y el documento queda marcado para guardarse.
func structuredCategories(doc *Document) (models.CategoryMap, error) {
	var categories models.CategoryMap
	if err := doc.Decode(KeyCategories, &categories); err == nil {
		return categories, nil
	}
	categories = models.DefaultCategories()
	if err := doc.Set(KeyCategories, categories); err != nil {
		return models.CategoryMap{}, err
	}
	return categories, nil
}

// Get devuelve el mapa de categorías, migrándolo si hace falta
func (r *CategoryRepository) Get(ctx context.Context) (models.CategoryMap, error) {
	var categories models.CategoryMap
	err := r.store.Update(ctx, func(doc *Document) error {
		var err error
		categories, err = structuredCategories(doc)
		return err
	})
	return categories, err
}

// AddSub agrega una subcategoría a una categoría principal
func (r *CategoryRepository) AddSub(ctx context.Context, mainCategory, name string) (models.CategoryMap, error) {
	return r.modify(ctx, mainCategory, func(c *models.Category) {
		c.AddSub(name)
	})
}

// RemoveSub elimina una subcategoría sin importar mayúsculas
func (r *CategoryRepository) RemoveSub(ctx context.Context, mainCategory, name string) (models.CategoryMap, error) {
	return r.modify(ctx, mainCategory, func(c *models.Category) {
		c.RemoveSub(name)
	})
}

func (r *CategoryRepository) modify(ctx context.Context, mainCategory string, fn func(*models.Category)) (models.CategoryMap, error) {
	var categories models.CategoryMap
	err := r.store.Update(ctx, func(doc *Document) error {
		var err error
		categories, err = structuredCategories(doc)
		if err != nil {
			return err
		}
		mainCat, ok := categories.Get(strings.ToUpper(mainCategory))
		if !ok {
			// la migración, si la hubo, se guarda igual
			if doc.Dirty() {
				return nil
			}
			return notFound("category", mainCategory)
		}
		fn(mainCat)
		return doc.Set(KeyCategories, categories)
	})
	if err != nil {
		return models.CategoryMap{}, err
	}
	if _, ok := categories.Get(strings.ToUpper(mainCategory)); !ok {
		return models.CategoryMap{}, notFound("category", mainCategory)
	}
	return categories, nil
}
