package repository

import (
	"context"

	json "github.com/goccy/go-json"

	"storefront/internal/models"
)

const (
	configPayment  = "payment"
	configLiveChat = "livechat"
)

// SettingsRepository maneja las sub-llaves de "config". Cada accesor repara
// solo su propia sub-llave y conserva las demás.
type SettingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) PaymentConfig(ctx context.Context) (models.PaymentConfig, error) {
	var cfg models.PaymentConfig
	err := r.store.Update(ctx, func(doc *Document) error {
		return loadSetting(doc, configPayment, &cfg, models.PaymentConfig{})
	})
	return cfg, err
}

func (r *SettingsRepository) UpdatePaymentConfig(ctx context.Context, update models.PaymentConfigUpdate) (models.PaymentConfig, error) {
	var cfg models.PaymentConfig
	err := r.store.Update(ctx, func(doc *Document) error {
		if err := loadSetting(doc, configPayment, &cfg, models.PaymentConfig{}); err != nil {
			return err
		}
		update.Apply(&cfg)
		return saveSetting(doc, configPayment, cfg)
	})
	return cfg, err
}

func (r *SettingsRepository) LiveChatConfig(ctx context.Context) (models.LiveChatConfig, error) {
	var cfg models.LiveChatConfig
	err := r.store.Update(ctx, func(doc *Document) error {
		return loadSetting(doc, configLiveChat, &cfg, models.LiveChatConfig{})
	})
	return cfg, err
}

func (r *SettingsRepository) UpdateLiveChatConfig(ctx context.Context, update models.LiveChatConfigUpdate) (models.LiveChatConfig, error) {
	var cfg models.LiveChatConfig
	err := r.store.Update(ctx, func(doc *Document) error {
		if err := loadSetting(doc, configLiveChat, &cfg, models.LiveChatConfig{}); err != nil {
			return err
		}
		update.Apply(&cfg)
		return saveSetting(doc, configLiveChat, cfg)
	})
	return cfg, err
}

// configSection devuelve "config" como objeto. Si no lo es, queda vacío.
func configSection(doc *Document) (map[string]json.RawMessage, bool) {
	var section map[string]json.RawMessage
	if err := doc.Decode(KeyConfig, &section); err != nil || section == nil {
		return map[string]json.RawMessage{}, false
	}
	return section, true
}

// loadSetting decodifica config.<name> en out. Si config o la sub-llave no
// son objetos válidos, escribe def y marca el documento.
func loadSetting[T any](doc *Document, name string, out *T, def T) error {
	section, ok := configSection(doc)
	if ok {
		if raw := section[name]; !isNull(raw) {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				*out = v
				return nil
			}
		}
	}
	*out = def
	return saveSetting(doc, name, def)
}

func saveSetting(doc *Document, name string, v any) error {
	section, _ := configSection(doc)
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	section[name] = raw
	return doc.Set(KeyConfig, section)
}
