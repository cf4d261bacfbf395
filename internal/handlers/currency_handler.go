package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/coerce"
	"storefront/internal/currency"
)

type CurrencyHandler struct {
	log *slog.Logger
}

func NewCurrencyHandler(log *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{log: log}
}

type convertRequest struct {
	Amount any    `json:"amount"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
}

const msgPairNotSupported = "Currency pair not supported."

// GET /api/currency/rate?from=&to=
func (h *CurrencyHandler) GetRate(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "From and to currencies are required."})
		return
	}

	quote, err := currency.Rate(from, to)
	if err != nil {
		h.currencyError(c, err, "Failed to get exchange rate.")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// POST /api/currency/convert
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req convertRequest
	err := c.ShouldBindJSON(&req)
	amount, numeric := coerce.Numeric(req.Amount)
	if err != nil || !numeric || amount == 0 {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Amount, from, and to currencies are required."})
		return
	}

	conv, err := currency.Convert(amount, req.From, req.To)
	if err != nil {
		h.currencyError(c, err, "Failed to convert currency.")
		return
	}
	conv.OriginalAmount = req.Amount
	c.JSON(http.StatusOK, conv)
}

func (h *CurrencyHandler) currencyError(c *gin.Context, err error, failure string) {
	if errors.Is(err, currency.ErrUnsupportedPair) {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgPairNotSupported})
		return
	}
	fail(c, h.log, err, "", failure)
}
