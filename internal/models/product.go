package models

// Product representa un producto del catálogo tal como se guarda en el documento
type Product struct {
	// ID es el timestamp de creación en milisegundos
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	SubCategory    string         `json:"subCategory"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	OriginalPrice  *float64       `json:"originalPrice,omitempty"`
	IsOutOfStock   bool           `json:"isOutOfStock"`
	ShowOnHomePage bool           `json:"showOnHomePage"`
	Colors         []ColorVariant `json:"colors"`
}

// ColorVariant es una variante de color con sus imágenes, en orden de inserción
type ColorVariant struct {
	Name   string     `json:"name"`
	Value  string     `json:"value"`
	Images []ImageRef `json:"images"`
}

type ImageRef struct {
	URL string `json:"url"`
}

// HasDiscount indica si hay un precio anterior mayor que el actual
func (p Product) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// ImageURLs devuelve todas las URLs de imagen de todos los colores
func (p Product) ImageURLs() []string {
	var urls []string
	for _, c := range p.Colors {
		for _, img := range c.Images {
			if img.URL != "" {
				urls = append(urls, img.URL)
			}
		}
	}
	return urls
}
