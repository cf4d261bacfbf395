package catalog

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// imageFieldPrefix es la convención del formulario de administración: los
// archivos del color en la posición idx llegan en el campo images_<idx>.
const imageFieldPrefix = "images_"

// Upload asocia una imagen ya guardada con la posición del color al que pertenece
type Upload struct {
	ColorIndex int
	URL        string
}

func ImageField(idx int) string {
	return imageFieldPrefix + strconv.Itoa(idx)
}

// ColorIndex interpreta un nombre de campo de archivo. Solo acepta la forma
// exacta que produce ImageField: "images_01" no corresponde al índice 1.
func ColorIndex(field string) (int, bool) {
	suffix, ok := strings.CutPrefix(field, imageFieldPrefix)
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(suffix)
	if err != nil || idx < 0 || ImageField(idx) != field {
		return 0, false
	}
	return idx, true
}

// ParseColors decodifica el campo "colors" del formulario. Un valor vacío,
// mal formado o que no sea un arreglo produce una lista vacía sin error.
func ParseColors(raw string) []map[string]any {
	if strings.TrimSpace(raw) == "" {
		return []map[string]any{}
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []map[string]any{}
	}
	colors := make([]map[string]any, 0, len(items))
	for _, item := range items {
		c, ok := item.(map[string]any)
		if !ok {
			c = map[string]any{}
		}
		colors = append(colors, c)
	}
	return colors
}

// MergeColors une cada descriptor con las imágenes subidas para su posición.
// Las imágenes existentes van primero y las nuevas se agregan en el orden en
// que se recibieron. El resto de campos del descriptor se conserva.
//
// La asociación es puramente posicional: si el cliente envía los descriptores
// en otro orden que los índices de los campos, las imágenes quedan en el color
// equivocado. Un color sin imágenes no se rechaza aquí.
func MergeColors(descriptors []map[string]any, uploads []Upload) []any {
	merged := make([]any, 0, len(descriptors))
	for idx, d := range descriptors {
		existing, _ := d["images"].([]any)
		images := make([]any, 0, len(existing))
		images = append(images, existing...)
		for _, u := range uploads {
			if u.ColorIndex == idx {
				images = append(images, map[string]any{"url": u.URL})
			}
		}

		color := make(map[string]any, len(d)+1)
		for k, v := range d {
			color[k] = v
		}
		color["images"] = images
		merged = append(merged, color)
	}
	return merged
}
