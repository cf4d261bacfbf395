package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type SettingsHandler struct {
	repo *repository.SettingsRepository
	log  *slog.Logger
}

func NewSettingsHandler(repo *repository.SettingsRepository, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{repo: repo, log: log}
}

// bindOptionalJSON acepta un cuerpo vacío como {}
func bindOptionalJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// GET /api/config/payment
func (h *SettingsHandler) GetPaymentConfig(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	cfg, err := h.repo.PaymentConfig(ctx)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch payment config.")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PUT /api/config/payment
func (h *SettingsHandler) UpdatePaymentConfig(c *gin.Context) {
	var update models.PaymentConfigUpdate
	if err := bindOptionalJSON(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid payment config."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	cfg, err := h.repo.UpdatePaymentConfig(ctx, update)
	if err != nil {
		fail(c, h.log, err, "", "Failed to update payment config.")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GET /api/config/livechat
func (h *SettingsHandler) GetLiveChatConfig(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	cfg, err := h.repo.LiveChatConfig(ctx)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch live chat config.")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PUT /api/config/livechat
func (h *SettingsHandler) UpdateLiveChatConfig(c *gin.Context) {
	var update models.LiveChatConfigUpdate
	if err := bindOptionalJSON(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid live chat config."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	cfg, err := h.repo.UpdateLiveChatConfig(ctx, update)
	if err != nil {
		fail(c, h.log, err, "", "Failed to update live chat config.")
		return
	}
	c.JSON(http.StatusOK, cfg)
}
