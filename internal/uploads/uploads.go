// Package uploads maneja el directorio de imágenes subidas que se sirve en
// /uploads.
package uploads

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"storefront/internal/models"
)

// URLPrefix es la ruta pública bajo la que se sirven los archivos
const URLPrefix = "/uploads"

type Dir struct {
	root string
	now  func() time.Time
	log  *slog.Logger

	mu   sync.Mutex
	last int64
}

func New(root string, logger *slog.Logger) *Dir {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dir{root: root, now: time.Now, log: logger}
}

func (d *Dir) Root() string { return d.root }

// Ensure crea el directorio si no existe
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	return nil
}

// NewName genera "<milisegundos><extensión>". Dentro del proceso el número
// nunca se repite: si dos archivos llegan en el mismo milisegundo el segundo
// usa el siguiente.
func (d *Dir) NewName(original string) string {
	d.mu.Lock()
	ms := d.now().UnixMilli()
	if ms <= d.last {
		ms = d.last + 1
	}
	d.last = ms
	d.mu.Unlock()
	return fmt.Sprintf("%d%s", ms, Ext(original))
}

// Ext devuelve la extensión del nombre original. Un nombre que empieza con
// punto y no tiene otro (".env") no tiene extensión.
func Ext(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	i := strings.LastIndex(base, ".")
	if i <= 0 || strings.Trim(base[:i], ".") == "" {
		return ""
	}
	return base[i:]
}

// Path es la ruta en disco de un archivo subido
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, name)
}

// URL es la ruta pública de un archivo subido
func (d *Dir) URL(name string) string {
	return URLPrefix + "/" + name
}

// Remove borra el archivo al que apunta url. Solo se resuelven URLs bajo
// /uploads/ y de ellas solo el nombre base, así nunca se sale del directorio.
// Otras URLs y archivos inexistentes no son error.
func (d *Dir) Remove(url string) error {
	rest, ok := strings.CutPrefix(strings.ReplaceAll(url, "\\", "/"), URLPrefix+"/")
	if !ok {
		return nil
	}
	name := path.Base(rest)
	if name == "." || name == "/" || name == ".." || name == "" {
		return nil
	}
	err := os.Remove(d.Path(name))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// RemoveProductImages borra todas las imágenes de todos los colores. Un fallo
// no detiene el resto; se devuelve el primero junto con la cantidad procesada.
func (d *Dir) RemoveProductImages(p models.Product) (int, error) {
	removed := 0
	var first error
	for _, url := range p.ImageURLs() {
		if err := d.Remove(url); err != nil {
			d.log.Warn("Could not delete image", "url", url, "err", err)
			if first == nil {
				first = fmt.Errorf("remove %s: %w", url, err)
			}
			continue
		}
		removed++
	}
	return removed, first
}
