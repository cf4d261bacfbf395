package repository

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"

	json "github.com/goccy/go-json"

	"storefront/internal/storage"
)

// Llaves de primer nivel del documento
const (
	KeyProducts   = "products"
	KeyUsers      = "users"
	KeyOrders     = "orders"
	KeyCategories = "categories"
	KeyConfig     = "config"
	KeyBrands     = "brands"
	KeyBanners    = "banners"
)

var errAbsent = errors.New("key absent")

// Document es el contenido completo de la base: cada llave de primer nivel
// guarda su JSON sin interpretar, así las llaves que nadie toca se reescriben
// tal cual.
type Document struct {
	fields map[string]json.RawMessage
	dirty  bool
}

// DefaultDocument es lo que se lee cuando no existe nada guardado. Las
// categorías arrancan en la forma antigua (arreglo) para que la primera
// lectura las migre a las cinco categorías por defecto.
func DefaultDocument() *Document {
	return &Document{fields: map[string]json.RawMessage{
		KeyProducts:   json.RawMessage(`[]`),
		KeyUsers:      json.RawMessage(`[]`),
		KeyOrders:     json.RawMessage(`[]`),
		KeyCategories: json.RawMessage(`[]`),
		KeyConfig:     json.RawMessage(`{}`),
		KeyBrands:     json.RawMessage(`[]`),
	}}
}

func parseDocument(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		// "null" en disco
		fields = make(map[string]json.RawMessage)
	}
	return &Document{fields: fields}, nil
}

func (d *Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Raw devuelve el JSON de una llave; nil si no existe o es null
func (d *Document) Raw(key string) json.RawMessage {
	raw := d.fields[key]
	if isNull(raw) {
		return nil
	}
	return raw
}

// Decode interpreta una llave. Devuelve errAbsent si falta o es null.
func (d *Document) Decode(key string, v any) error {
	raw := d.Raw(key)
	if raw == nil {
		return errAbsent
	}
	return json.Unmarshal(raw, v)
}

// Set reemplaza una llave y marca el documento como modificado
func (d *Document) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if d.fields == nil {
		d.fields = make(map[string]json.RawMessage)
	}
	d.fields[key] = raw
	d.dirty = true
	return nil
}

func (d *Document) Dirty() bool { return d.dirty }

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

type Options struct {
	// LegacyDegrade: un documento ilegible se trata como vacío y las fallas de
	// escritura solo se registran
	LegacyDegrade bool
	// SerializeWrites protege cada ciclo leer-modificar-escribir con un mutex
	// del proceso
	SerializeWrites bool
	Logger          *slog.Logger
}

// Store es el único punto de acceso al documento persistido.
//
// Sin SerializeWrites, dos ciclos Update concurrentes pueden intercalarse y
// el segundo en escribir descarta los cambios del primero: cada escritura
// reemplaza el documento completo y no hay versión ni bloqueo.
type Store struct {
	backend storage.Backend
	legacy  bool
	mu      *sync.Mutex
	log     *slog.Logger
}

func NewStore(backend storage.Backend, opts Options) *Store {
	s := &Store{
		backend: backend,
		legacy:  opts.LegacyDegrade,
		log:     opts.Logger,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if opts.SerializeWrites {
		s.mu = &sync.Mutex{}
	}
	return s
}

// Read carga el documento. Si no existe devuelve el documento por defecto.
func (s *Store) Read(ctx context.Context) (*Document, error) {
	data, err := s.backend.Load(ctx)
	if errors.Is(err, storage.ErrNotExist) {
		return DefaultDocument(), nil
	}
	if err != nil {
		s.log.Error("Error reading database", "err", err)
		if s.legacy {
			return DefaultDocument(), nil
		}
		return nil, &StoreError{Op: "read", Err: err}
	}

	doc, err := parseDocument(data)
	if err != nil {
		s.log.Error("Error parsing database", "err", err)
		if s.legacy {
			return DefaultDocument(), nil
		}
		return nil, &StoreError{Op: "read", Err: errors.Join(ErrCorrupt, err)}
	}
	return doc, nil
}

// Write reemplaza el documento completo, con sangría de dos espacios
func (s *Store) Write(ctx context.Context, doc *Document) error {
	data, err := json.MarshalIndent(doc.fields, "", "  ")
	if err != nil {
		return &StoreError{Op: "encode", Err: err}
	}
	if err := s.backend.Save(ctx, data); err != nil {
		s.log.Error("Error writing database", "err", err)
		if s.legacy {
			return nil
		}
		return &StoreError{Op: "write", Err: err}
	}
	doc.dirty = false
	return nil
}

// Update lee el documento, aplica fn y escribe solo si fn modificó algo.
// Si fn devuelve error no se escribe nada.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) error) error {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if !doc.Dirty() {
		return nil
	}
	return s.Write(ctx, doc)
}
