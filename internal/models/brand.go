package models

// Brand es una tarjeta de "Shop by Brand" en la portada
type Brand struct {
	Label string `json:"label"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// BrandUpdate trae solo los campos enviados por el admin
type BrandUpdate struct {
	Label string
	Image string
	Link  string
}

func (u BrandUpdate) Apply(b *Brand) {
	if u.Image != "" {
		b.Image = u.Image
	}
	if u.Link != "" {
		b.Link = u.Link
	}
	if u.Label != "" {
		b.Label = u.Label
	}
}

// Banner es la respuesta de /api/banner
type Banner struct {
	Image string `json:"image"`
}
