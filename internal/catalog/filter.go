package catalog

import (
	"fmt"
	"strings"

	"storefront/internal/models"
)

// Filter corresponde a los parámetros de GET /api/products
type Filter struct {
	Category    string
	SubCategory string
	// HomeOnly se activa con cualquier valor no vacío de ?home=
	HomeOnly bool
}

// Match compara categoría y subcategoría sin distinguir mayúsculas
func (f Filter) Match(p models.Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.SubCategory != "" && !strings.EqualFold(p.SubCategory, f.SubCategory) {
		return false
	}
	if f.HomeOnly && !p.ShowOnHomePage {
		return false
	}
	return true
}

// Key identifica el filtro en caché; dos filtros equivalentes dan la misma clave
func (f Filter) Key() string {
	return fmt.Sprintf("cat=%s|sub=%s|home=%t",
		strings.ToUpper(f.Category), strings.ToUpper(f.SubCategory), f.HomeOnly)
}

func (f Filter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search busca q como subcadena de nombre, categoría o descripción.
// Una consulta vacía no devuelve nada.
func Search(products []models.Product, q string) []models.Product {
	out := make([]models.Product, 0)
	q = strings.ToLower(q)
	if q == "" {
		return out
	}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
