package catalog

import (
	"strings"

	"storefront/internal/models"
)

// duplicateKey agrupa productos con el mismo nombre y categoría
func duplicateKey(p models.Product) string {
	return strings.ToLower(strings.TrimSpace(p.Name)) + "|" + strings.ToLower(strings.TrimSpace(p.Category))
}

// MergeDuplicates conserva el primer producto de cada grupo y le agrega los
// colores de los demás miembros. El orden de primera aparición se mantiene.
// Devuelve cuántos productos fueron absorbidos.
func MergeDuplicates(products []models.Product) ([]models.Product, int) {
	index := make(map[string]int, len(products))
	merged := make([]models.Product, 0, len(products))
	for _, p := range products {
		key := duplicateKey(p)
		if i, seen := index[key]; seen {
			merged[i].Colors = append(merged[i].Colors, p.Colors...)
			continue
		}
		p.Colors = append([]models.ColorVariant{}, p.Colors...)
		index[key] = len(merged)
		merged = append(merged, p)
	}
	return merged, len(products) - len(merged)
}
