// Package catalog contiene las reglas del catálogo de productos: la
// normalización de registros, la unión de colores con imágenes subidas y los
// filtros de búsqueda.
package catalog

import (
	"storefront/internal/coerce"
	"storefront/internal/models"
)

// DefaultColorValue se usa cuando un color no trae código hexadecimal
const DefaultColorValue = "#000000"

// Normalize convierte un objeto arbitrario en un Product con todos los campos
// definidos. Es idempotente: Normalize(Fields(Normalize(x))) == Normalize(x).
func Normalize(fields map[string]any) models.Product {
	p := models.Product{
		Name:           coerce.String(fields["name"]),
		Category:       coerce.String(fields["category"]),
		SubCategory:    coerce.String(fields["subCategory"]),
		Description:    coerce.String(fields["description"]),
		IsOutOfStock:   coerce.Truthy(fields["isOutOfStock"]),
		ShowOnHomePage: coerce.Truthy(fields["showOnHomePage"]),
		Colors:         normalizeColors(fields["colors"]),
	}
	if id, ok := coerce.Int64(fields["id"]); ok {
		p.ID = id
	}
	if price, ok := coerce.Number(fields["price"]); ok {
		p.Price = price
	}
	if was, ok := coerce.Number(fields["originalPrice"]); ok {
		p.OriginalPrice = &was
	}
	return p
}

func normalizeColors(v any) []models.ColorVariant {
	list, _ := v.([]any)
	colors := make([]models.ColorVariant, 0, len(list))
	for _, item := range list {
		c, _ := item.(map[string]any)
		value := coerce.String(c["value"])
		if value == "" {
			value = DefaultColorValue
		}
		colors = append(colors, models.ColorVariant{
			Name:   coerce.String(c["name"]),
			Value:  value,
			Images: normalizeImages(c["images"]),
		})
	}
	return colors
}

func normalizeImages(v any) []models.ImageRef {
	list, _ := v.([]any)
	images := make([]models.ImageRef, 0, len(list))
	for _, item := range list {
		// entradas que no son objetos no tienen URL que conservar
		img, ok := item.(map[string]any)
		if !ok {
			continue
		}
		images = append(images, models.ImageRef{URL: coerce.String(img["url"])})
	}
	return images
}

// Fields devuelve el producto como mapa de campos, con las mismas formas que
// produce la decodificación JSON del documento.
func Fields(p models.Product) map[string]any {
	colors := make([]any, 0, len(p.Colors))
	for _, c := range p.Colors {
		images := make([]any, 0, len(c.Images))
		for _, img := range c.Images {
			images = append(images, map[string]any{"url": img.URL})
		}
		colors = append(colors, map[string]any{
			"name":   c.Name,
			"value":  c.Value,
			"images": images,
		})
	}

	fields := map[string]any{
		"id":             float64(p.ID),
		"name":           p.Name,
		"category":       p.Category,
		"subCategory":    p.SubCategory,
		"description":    p.Description,
		"price":          p.Price,
		"isOutOfStock":   p.IsOutOfStock,
		"showOnHomePage": p.ShowOnHomePage,
		"colors":         colors,
	}
	if p.OriginalPrice != nil {
		fields["originalPrice"] = *p.OriginalPrice
	}
	return fields
}
