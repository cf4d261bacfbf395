package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// DefaultCategoryNames son las categorías principales de la tienda, en orden
var DefaultCategoryNames = []string{"WOMEN", "CURVE", "MEN", "KIDS", "BEAUTY"}

type Category struct {
	Sub []string `json:"sub"`
}

// CategoryMap asocia el nombre en mayúsculas de una categoría con sus
// subcategorías. Conserva el orden de inserción al serializar.
type CategoryMap struct {
	names   []string
	entries map[string]*Category
}

func DefaultCategories() CategoryMap {
	var m CategoryMap
	for _, name := range DefaultCategoryNames {
		m.Set(name, Category{Sub: []string{}})
	}
	return m
}

func (m CategoryMap) Len() int { return len(m.names) }

func (m CategoryMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Get busca una categoría por su nombre exacto
func (m CategoryMap) Get(name string) (*Category, bool) {
	c, ok := m.entries[name]
	return c, ok
}

func (m *CategoryMap) Set(name string, c Category) {
	if m.entries == nil {
		m.entries = make(map[string]*Category)
	}
	if c.Sub == nil {
		c.Sub = []string{}
	}
	if _, exists := m.entries[name]; !exists {
		m.names = append(m.names, name)
	}
	m.entries[name] = &c
}

// AddSub agrega una subcategoría si no existe otra igual sin importar mayúsculas
func (c *Category) AddSub(name string) bool {
	for _, s := range c.Sub {
		if strings.EqualFold(s, name) {
			return false
		}
	}
	c.Sub = append(c.Sub, name)
	return true
}

// RemoveSub elimina todas las subcategorías iguales sin importar mayúsculas
func (c *Category) RemoveSub(name string) {
	kept := make([]string, 0, len(c.Sub))
	for _, s := range c.Sub {
		if !strings.EqualFold(s, name) {
			kept = append(kept, s)
		}
	}
	c.Sub = kept
}

func (m CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var errNotObject = errors.New("categories: expected a JSON object")

func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}

	var out CategoryMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var c Category
		if err := dec.Decode(&c); err != nil {
			return err
		}
		out.Set(name, c)
	}
	if out.entries == nil {
		out.entries = make(map[string]*Category)
	}
	*m = out
	return nil
}
