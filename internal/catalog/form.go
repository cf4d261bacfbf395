package catalog

import "storefront/internal/coerce"

// Form da acceso a los campos de texto de un formulario multipart.
// ok es false cuando el campo no fue enviado.
type Form interface {
	Value(key string) (value string, ok bool)
}

// FormFields convierte el formulario del admin en campos de producto. Todos
// los campos se definen, incluso los ausentes, para que al actualizar
// reemplacen por completo los valores guardados.
func FormFields(form Form, colors []any) map[string]any {
	fields := map[string]any{
		"name":           optional(form, "name"),
		"category":       optional(form, "category"),
		"subCategory":    optional(form, "subCategory"),
		"description":    optional(form, "description"),
		"price":          nil,
		"originalPrice":  nil,
		"isOutOfStock":   isTrue(form, "isOutOfStock"),
		"showOnHomePage": isTrue(form, "showOnHomePage"),
		"colors":         colors,
	}

	if raw, ok := form.Value("price"); ok {
		if price, ok := coerce.ParseFloat(raw); ok {
			fields["price"] = price
		}
	}
	// un originalPrice vacío significa "sin descuento"
	if raw, ok := form.Value("originalPrice"); ok && raw != "" {
		if was, ok := coerce.ParseFloat(raw); ok {
			fields["originalPrice"] = was
		}
	}
	return fields
}

func optional(form Form, key string) any {
	if v, ok := form.Value(key); ok {
		return v
	}
	return nil
}

func isTrue(form Form, key string) bool {
	v, _ := form.Value(key)
	return v == "true"
}

// Overlay aplica campos nuevos sobre un registro guardado sin modificar ninguno
func Overlay(stored, changes map[string]any) map[string]any {
	out := make(map[string]any, len(stored)+len(changes))
	for k, v := range stored {
		out[k] = v
	}
	for k, v := range changes {
		out[k] = v
	}
	return out
}
