package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/uploads"
)

// BrandHandler atiende las marcas y los banners de categoría de la portada
type BrandHandler struct {
	repo    *repository.BrandRepository
	uploads *uploads.Dir
	log     *slog.Logger
}

func NewBrandHandler(repo *repository.BrandRepository, dir *uploads.Dir, log *slog.Logger) *BrandHandler {
	return &BrandHandler{repo: repo, uploads: dir, log: log}
}

const msgCategoryRequired = "Category is required."

// GET /api/brands
func (h *BrandHandler) ListBrands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	brands, err := h.repo.List(ctx)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch brands.")
		return
	}
	c.JSON(http.StatusOK, brands)
}

// PUT /api/brands/:label
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	form, files, err := parseForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgInvalidForm})
		return
	}
	image, err := saveSingle(c, h.uploads, files, "image")
	if err != nil {
		fail(c, h.log, err, "", "Failed to update brand.")
		return
	}

	update := models.BrandUpdate{Image: image}
	update.Link, _ = form.Value("link")
	update.Label, _ = form.Value("label")

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	brand, err := h.repo.Update(ctx, c.Param("label"), update)
	if err != nil {
		if image != "" {
			_ = h.uploads.Remove(image)
		}
		fail(c, h.log, err, "Brand not found.", "Failed to update brand.")
		return
	}
	c.JSON(http.StatusOK, brand)
}

// GET /api/banner?category=
func (h *BrandHandler) GetBanner(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgCategoryRequired})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	banner, err := h.repo.Banner(ctx, category)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch banner.")
		return
	}
	c.JSON(http.StatusOK, banner)
}

// PUT /api/banner
func (h *BrandHandler) UpdateBanner(c *gin.Context) {
	form, files, err := parseForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgInvalidForm})
		return
	}
	category, _ := form.Value("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgCategoryRequired})
		return
	}
	image, err := saveSingle(c, h.uploads, files, "bannerImage")
	if err != nil {
		fail(c, h.log, err, "", "Failed to update banner.")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	banner, err := h.repo.SetBanner(ctx, category, image)
	if err != nil {
		if image != "" {
			_ = h.uploads.Remove(image)
		}
		fail(c, h.log, err, "", "Failed to update banner.")
		return
	}
	c.JSON(http.StatusOK, banner)
}
