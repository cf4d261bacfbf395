package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"storefront/internal/coerce"
	"storefront/internal/models"
)

const defaultPaymentMethod = "UNKNOWN"

type OrderRepository struct {
	store *Store
	now   func() time.Time
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{
		store: store,
		now:   time.Now,
	}
}

// ordersList repara "orders" si no es un arreglo y lo devuelve
func ordersList(doc *Document) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := doc.Decode(KeyOrders, &items); err == nil {
		if items == nil {
			items = []json.RawMessage{}
		}
		return items, nil
	}
	items = []json.RawMessage{}
	if err := doc.Set(KeyOrders, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create guarda un pedido nuevo con id y fecha de creación
func (r *OrderRepository) Create(ctx context.Context, input models.OrderInput) (models.Order, error) {
	now := r.now()
	order := models.Order{
		ID:            now.UnixMilli(),
		CreatedAt:     now.UTC().Format("2006-01-02T15:04:05.000Z"),
		Email:         input.Email,
		Delivery:      input.Delivery,
		PaymentMethod: input.PaymentMethod,
		Items:         input.Items,
		Note:          input.Note,
	}
	if !coerce.Truthy(order.Delivery) {
		order.Delivery = map[string]any{}
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = defaultPaymentMethod
	}
	if subtotal, ok := coerce.Number(input.Subtotal); ok {
		order.Subtotal = subtotal
	}

	err := r.store.Update(ctx, func(doc *Document) error {
		items, err := ordersList(doc)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(order)
		if err != nil {
			return err
		}
		return doc.Set(KeyOrders, append(items, raw))
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// List devuelve los pedidos guardados, del más nuevo al más viejo según
// createdAt comparado como texto
func (r *OrderRepository) List(ctx context.Context) ([]json.RawMessage, error) {
	var items []json.RawMessage
	err := r.store.Update(ctx, func(doc *Document) error {
		var err error
		items, err = ordersList(doc)
		return err
	})
	if err != nil {
		return nil, err
	}

	created := make([]string, len(items))
	for i, raw := range items {
		var rec struct {
			CreatedAt any `json:"createdAt"`
		}
		if err := json.Unmarshal(raw, &rec); err == nil {
			created[i] = coerce.String(rec.CreatedAt)
		}
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return created[idx[a]] > created[idx[b]]
	})

	sorted := make([]json.RawMessage, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	return sorted, nil
}

// Delete elimina el pedido con ese id numérico
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(ctx, func(doc *Document) error {
		items, err := ordersList(doc)
		if err != nil {
			return err
		}
		i := indexByNumericID(items, id)
		if i < 0 {
			if doc.Dirty() {
				return errors.Join(r.persistRepair(ctx, doc), notFound("order", id))
			}
			return notFound("order", id)
		}
		return doc.Set(KeyOrders, append(items[:i], items[i+1:]...))
	})
}

// persistRepair guarda la reparación de "orders" antes de responder 404
func (r *OrderRepository) persistRepair(ctx context.Context, doc *Document) error {
	return r.store.Write(ctx, doc)
}
