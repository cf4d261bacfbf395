package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/repository"
)

type CategoryHandler struct {
	repo *repository.CategoryRepository
	log  *slog.Logger
}

func NewCategoryHandler(repo *repository.CategoryRepository, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{repo: repo, log: log}
}

type subCategoryRequest struct {
	MainCategory string `json:"mainCategory" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

const msgSubCategoryRequired = "Main category and sub-category name are required."

// GET /api/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	categories, err := h.repo.Get(ctx)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch categories.")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// POST /api/sub-category
func (h *CategoryHandler) AddSubCategory(c *gin.Context) {
	var req subCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("Invalid request body", "fields", invalidFields(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgSubCategoryRequired})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	categories, err := h.repo.AddSub(ctx, req.MainCategory, req.Name)
	if err != nil {
		fail(c, h.log, err, "Main category not found.", "Failed to add sub-category.")
		return
	}
	c.JSON(http.StatusCreated, categories)
}

// DELETE /api/sub-category
func (h *CategoryHandler) DeleteSubCategory(c *gin.Context) {
	var req subCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("Invalid request body", "fields", invalidFields(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgSubCategoryRequired})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	categories, err := h.repo.RemoveSub(ctx, req.MainCategory, req.Name)
	if err != nil {
		fail(c, h.log, err, "Main category not found.", "Failed to delete sub-category.")
		return
	}
	c.JSON(http.StatusOK, categories)
}
