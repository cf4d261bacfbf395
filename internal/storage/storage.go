// Package storage guarda el documento completo de la tienda en distintos
// medios. Cada backend lee y reescribe el documento entero; ninguno ofrece
// escrituras parciales ni control de concurrencia.
package storage

import (
	"context"
	"errors"
)

// ErrNotExist indica que todavía no se ha guardado ningún documento
var ErrNotExist = errors.New("document does not exist")

type Backend interface {
	// Load devuelve el documento serializado o ErrNotExist
	Load(ctx context.Context) ([]byte, error)
	// Save reemplaza el documento completo
	Save(ctx context.Context, data []byte) error
}
