package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"storefront/internal/models"
)

type UserRepository struct {
	store *Store
	now   func() time.Time
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{
		store: store,
		now:   time.Now,
	}
}

// Create registra un usuario. El email debe ser único (comparación exacta).
func (r *UserRepository) Create(ctx context.Context, input models.UserInput) (models.User, error) {
	now := r.now()
	user := models.User{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Username:  input.Username,
		Email:     input.Email,
		CreatedAt: now.UTC().Format("2006-01-02T15:04:05.000Z"),
	}

	err := r.store.Update(ctx, func(doc *Document) error {
		items, err := decodeList(doc, KeyUsers)
		if err != nil {
			return err
		}
		for _, raw := range items {
			var rec struct {
				Email any `json:"email"`
			}
			if err := json.Unmarshal(raw, &rec); err != nil {
				continue
			}
			if s, ok := rec.Email.(string); ok && s == user.Email {
				return fmt.Errorf("email %q: %w", user.Email, ErrConflict)
			}
		}
		raw, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return doc.Set(KeyUsers, append(items, raw))
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// List devuelve los usuarios tal como están guardados
func (r *UserRepository) List(ctx context.Context) ([]json.RawMessage, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return decodeList(doc, KeyUsers)
}

// Delete compara el id como texto, así "1700000000000" encuentra tanto el
// número como el string guardado
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(doc *Document) error {
		items, err := decodeList(doc, KeyUsers)
		if err != nil {
			return err
		}
		i := indexByStringID(items, id)
		if i < 0 {
			return notFound("user", id)
		}
		return doc.Set(KeyUsers, append(items[:i], items[i+1:]...))
	})
}
