// Package cache guarda en memoria respuestas de lectura del catálogo por un
// tiempo corto. Las escrituras de productos invalidan el prefijo completo.
package cache

import (
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

type Cache struct {
	items map[string]entry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	// gen avanza con cada invalidación
	gen uint64

	stop      chan struct{}
	closeOnce sync.Once
}

// New crea un caché con ttl por defecto. Con ttl <= 0 el caché queda
// desactivado: Set no guarda nada.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if ttl > 0 {
		go c.cleanupExpired(cleanupInterval(ttl))
	}
	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < time.Minute {
		return time.Minute
	}
	return ttl
}

func (c *Cache) Enabled() bool { return c != nil && c.ttl > 0 }

// Set serializa value y lo guarda. Guardar bytes evita que quien lee el
// valor cacheado pueda modificarlo.
func (c *Cache) Set(key string, value any) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{data: data, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Generation devuelve el contador de invalidaciones. Se toma antes de leer
// la fuente y se pasa a SetIfUnchanged.
func (c *Cache) Generation() uint64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfUnchanged guarda value solo si no hubo invalidaciones desde gen. Así
// una lectura que empezó antes de una escritura no deja datos viejos.
func (c *Cache) SetIfUnchanged(key string, value any, gen uint64) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false, nil
	}
	c.items[key] = entry{data: data, expiresAt: c.now().Add(c.ttl)}
	return true, nil
}

// Get deserializa el valor guardado en target. found es false si no existe
// o expiró.
func (c *Cache) Get(key string, target any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()
	if !found || c.now().After(item.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(item.data, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	delete(c.items, key)
}

// DeleteByPrefix elimina todas las claves que empiecen con un prefijo
func (c *Cache) DeleteByPrefix(prefix string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = make(map[string]entry)
}

func (c *Cache) Size() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close detiene la limpieza periódica
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() { close(c.stop) })
}

func (c *Cache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
