package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type UserHandler struct {
	repo *repository.UserRepository
	log  *slog.Logger
}

func NewUserHandler(repo *repository.UserRepository, log *slog.Logger) *UserHandler {
	return &UserHandler{repo: repo, log: log}
}

// POST /api/users
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Debug("Invalid request body", "fields", invalidFields(err), "err", err)
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Username and email are required."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	user, err := h.repo.Create(ctx, input)
	if errors.Is(err, repository.ErrConflict) {
		c.JSON(http.StatusConflict, MessageResponse{Message: "Email already registered."})
		return
	}
	if err != nil {
		fail(c, h.log, err, "", "Failed to register user.")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	users, err := h.repo.List(ctx)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch users.")
		return
	}
	c.JSON(http.StatusOK, users)
}

// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	if err := h.repo.Delete(ctx, c.Param("id")); err != nil {
		fail(c, h.log, err, "User not found.", "Failed to delete user.")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully."})
}
