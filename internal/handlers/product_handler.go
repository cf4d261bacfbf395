package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/messaging"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/uploads"
)

const productsCachePrefix = "products:"

type ProductHandler struct {
	repo    *repository.ProductRepository
	uploads *uploads.Dir
	cache   *cache.Cache
	events  messaging.Publisher
	log     *slog.Logger
}

func NewProductHandler(repo *repository.ProductRepository, dir *uploads.Dir, c *cache.Cache, events messaging.Publisher, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		repo:    repo,
		uploads: dir,
		cache:   c,
		events:  events,
		log:     log,
	}
}

// GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := catalog.Filter{
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
		HomeOnly:    c.Query("home") != "",
	}
	cacheKey := productsCachePrefix + "list:" + filter.Key()

	var products []models.Product
	if found, _ := h.cache.Get(cacheKey, &products); found {
		c.JSON(http.StatusOK, products)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	gen := h.cache.Generation()
	products, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch products.")
		return
	}

	_, _ = h.cache.SetIfUnchanged(cacheKey, products, gen)
	c.JSON(http.StatusOK, products)
}

// GET /api/products/search?q=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, []models.Product{})
		return
	}
	cacheKey := productsCachePrefix + "search:" + strings.ToLower(q)

	var products []models.Product
	if found, _ := h.cache.Get(cacheKey, &products); found {
		c.JSON(http.StatusOK, products)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	gen := h.cache.Generation()
	products, err := h.repo.Search(ctx, q)
	if err != nil {
		fail(c, h.log, err, "", "Failed to search products.")
		return
	}

	_, _ = h.cache.SetIfUnchanged(cacheKey, products, gen)
	c.JSON(http.StatusOK, products)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	fields, saved, ok := h.productForm(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	product, err := h.repo.Create(ctx, fields)
	if err != nil {
		removeFiles(h.uploads, saved)
		fail(c, h.log, err, "", "Failed to save product.")
		return
	}

	h.cache.DeleteByPrefix(productsCachePrefix)
	publish(ctx, h.events, h.log, messaging.TopicProductCreated, productKey(product.ID), product)
	c.JSON(http.StatusCreated, product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := numericID(c)
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "Product not found."})
		return
	}

	fields, saved, ok := h.productForm(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	product, err := h.repo.Update(ctx, id, fields)
	if err != nil {
		removeFiles(h.uploads, saved)
		fail(c, h.log, err, "Product not found.", "Failed to update product.")
		return
	}

	h.cache.DeleteByPrefix(productsCachePrefix)
	publish(ctx, h.events, h.log, messaging.TopicProductUpdated, productKey(product.ID), product)
	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := numericID(c)
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "Product not found."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	removed, err := h.repo.Delete(ctx, id)
	if err != nil {
		fail(c, h.log, err, "Product not found.", "Failed to delete product.")
		return
	}

	h.cache.DeleteByPrefix(productsCachePrefix)
	publish(ctx, h.events, h.log, messaging.TopicProductDeleted, productKey(id), gin.H{"id": id})

	// las imágenes se borran solo después de guardar el documento
	n, err := h.uploads.RemoveProductImages(removed)
	if err != nil {
		h.log.Error("Failed to delete product images", "id", id, "removed", n, "err", err)
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to delete product."})
		return
	}
	h.log.Debug("Product images removed", "id", id, "count", n)
	c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted successfully."})
}

// productForm lee el formulario del admin, guarda las imágenes images_<n> y
// arma los campos del producto. Si algo falla ya respondió.
func (h *ProductHandler) productForm(c *gin.Context) (map[string]any, []savedFile, bool) {
	form, files, err := parseForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msgInvalidForm})
		return nil, nil, false
	}

	saved, err := saveFiles(c, h.uploads, files, func(field string) bool {
		_, ok := catalog.ColorIndex(field)
		return ok
	})
	if err != nil {
		h.log.Error("Failed to store uploaded images", "err", err)
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to save product."})
		return nil, nil, false
	}

	uploaded := make([]catalog.Upload, 0, len(saved))
	for _, f := range saved {
		idx, _ := catalog.ColorIndex(f.Field)
		uploaded = append(uploaded, catalog.Upload{ColorIndex: idx, URL: f.URL})
	}

	raw, _ := form.Value("colors")
	colors := catalog.MergeColors(catalog.ParseColors(raw), uploaded)
	return catalog.FormFields(form, colors), saved, true
}

func productKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
