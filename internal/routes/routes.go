package routes

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/cache"
	"storefront/internal/handlers"
	"storefront/internal/messaging"
	"storefront/internal/repository"
	"storefront/internal/uploads"
)

type Options struct {
	Store   *repository.Store
	Uploads *uploads.Dir
	Cache   *cache.Cache
	Events  messaging.Publisher
	// StaticDir es el build del frontend; vacío desactiva el catch-all
	StaticDir string
	Logger    *slog.Logger
}

func RegisterRoutes(router *gin.Engine, opts Options) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	events := opts.Events
	if events == nil {
		events = messaging.Nop{}
	}

	products := handlers.NewProductHandler(repository.NewProductRepository(opts.Store), opts.Uploads, opts.Cache, events, log)
	categories := handlers.NewCategoryHandler(repository.NewCategoryRepository(opts.Store), log)
	settings := handlers.NewSettingsHandler(repository.NewSettingsRepository(opts.Store), log)
	orders := handlers.NewOrderHandler(repository.NewOrderRepository(opts.Store), events, log)
	users := handlers.NewUserHandler(repository.NewUserRepository(opts.Store), log)
	brands := handlers.NewBrandHandler(repository.NewBrandRepository(opts.Store), opts.Uploads, log)
	currency := handlers.NewCurrencyHandler(log)

	router.Static(uploads.URLPrefix, opts.Uploads.Root())

	api := router.Group("/api")
	{
		api.GET("/products", products.ListProducts)
		api.GET("/products/search", products.SearchProducts)
		api.POST("/products", products.CreateProduct)
		api.PUT("/products/:id", products.UpdateProduct)
		api.DELETE("/products/:id", products.DeleteProduct)

		api.GET("/categories", categories.GetCategories)
		api.POST("/sub-category", categories.AddSubCategory)
		api.DELETE("/sub-category", categories.DeleteSubCategory)

		api.GET("/config/payment", settings.GetPaymentConfig)
		api.PUT("/config/payment", settings.UpdatePaymentConfig)
		api.GET("/config/livechat", settings.GetLiveChatConfig)
		api.PUT("/config/livechat", settings.UpdateLiveChatConfig)

		api.POST("/orders", orders.CreateOrder)
		api.GET("/orders", orders.ListOrders)
		api.DELETE("/orders/:id", orders.DeleteOrder)

		api.POST("/users", users.RegisterUser)
		api.GET("/users", users.ListUsers)
		api.DELETE("/users/:id", users.DeleteUser)

		api.GET("/brands", brands.ListBrands)
		api.PUT("/brands/:label", brands.UpdateBrand)
		api.GET("/banner", brands.GetBanner)
		api.PUT("/banner", brands.UpdateBanner)

		api.GET("/currency/rate", currency.GetRate)
		api.POST("/currency/convert", currency.Convert)
	}

	router.NoRoute(spaFallback(opts.StaticDir))
}

// spaFallback sirve los archivos del frontend y, para cualquier otra ruta,
// su index.html. Las rutas /api desconocidas responden 404 en JSON.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, handlers.MessageResponse{Message: "API endpoint not found"})
			return
		}
		if staticDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, handlers.MessageResponse{Message: "Not found"})
			return
		}

		// path.Clean sobre una ruta absoluta nunca sale de la raíz
		file := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, handlers.MessageResponse{Message: "Not found"})
			return
		}
		c.File(index)
	}
}
