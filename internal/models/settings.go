package models

// PaymentConfig guarda las llaves de los widgets de pago externos
type PaymentConfig struct {
	FlutterwavePublicKey     string `json:"flutterwavePublicKey"`
	FlutterwaveSecretKey     string `json:"flutterwaveSecretKey"`
	FlutterwaveWebhookSecret string `json:"flutterwaveWebhookSecret"`
	PaystackPublicKey        string `json:"paystackPublicKey"`
	PaystackSecretKey        string `json:"paystackSecretKey"`
}

// PaymentConfigUpdate representa los campos actualizables; nil conserva el valor
type PaymentConfigUpdate struct {
	FlutterwavePublicKey     *string `json:"flutterwavePublicKey,omitempty"`
	FlutterwaveSecretKey     *string `json:"flutterwaveSecretKey,omitempty"`
	FlutterwaveWebhookSecret *string `json:"flutterwaveWebhookSecret,omitempty"`
	PaystackPublicKey        *string `json:"paystackPublicKey,omitempty"`
	PaystackSecretKey        *string `json:"paystackSecretKey,omitempty"`
}

func (u PaymentConfigUpdate) Apply(cfg *PaymentConfig) {
	setIfPresent(&cfg.FlutterwavePublicKey, u.FlutterwavePublicKey)
	setIfPresent(&cfg.FlutterwaveSecretKey, u.FlutterwaveSecretKey)
	setIfPresent(&cfg.FlutterwaveWebhookSecret, u.FlutterwaveWebhookSecret)
	setIfPresent(&cfg.PaystackPublicKey, u.PaystackPublicKey)
	setIfPresent(&cfg.PaystackSecretKey, u.PaystackSecretKey)
}

type LiveChatConfig struct {
	LiveChatCode     string `json:"liveChatCode"`
	LiveChatProvider string `json:"liveChatProvider"`
	IsEnabled        bool   `json:"isEnabled"`
}

type LiveChatConfigUpdate struct {
	LiveChatCode     *string `json:"liveChatCode,omitempty"`
	LiveChatProvider *string `json:"liveChatProvider,omitempty"`
	IsEnabled        *bool   `json:"isEnabled,omitempty"`
}

func (u LiveChatConfigUpdate) Apply(cfg *LiveChatConfig) {
	setIfPresent(&cfg.LiveChatCode, u.LiveChatCode)
	setIfPresent(&cfg.LiveChatProvider, u.LiveChatProvider)
	if u.IsEnabled != nil {
		cfg.IsEnabled = *u.IsEnabled
	}
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
