// Command maint ejecuta tareas de mantenimiento sobre el documento de la tienda.
//
//	maint merge-duplicates
//	maint show-all-on-home
//
// Usa la misma configuración que el servidor (STORE_DRIVER, DATA_FILE, ...).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repository"
)

const taskTimeout = 2 * time.Minute

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	flags := flag.NewFlagSet("maint", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: maint <merge-duplicates|show-all-on-home>")
	}
	_ = flags.Parse(os.Args[1:])
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	backend, closeBackend, err := database.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("❌ Could not open store", "err", err)
		os.Exit(1)
	}
	defer closeBackend()

	store := repository.NewStore(backend, repository.Options{Logger: logger})
	if err := run(ctx, flags.Arg(0), repository.NewProductRepository(store), os.Stdout, logger); err != nil {
		logger.Error("❌ Task failed", "task", flags.Arg(0), "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, task string, repo *repository.ProductRepository, out io.Writer, logger *slog.Logger) error {
	switch task {
	case "merge-duplicates":
		absorbed := 0
		err := repo.Rewrite(ctx, func(products []models.Product) []models.Product {
			var merged []models.Product
			merged, absorbed = catalog.MergeDuplicates(products)
			return merged
		})
		if err != nil {
			return err
		}
		logger.Info("Duplicate products merged", "absorbed", absorbed)
		fmt.Fprintf(out, "Duplicate products merged! (%d absorbed)\n", absorbed)
		return nil

	case "show-all-on-home":
		count := 0
		err := repo.Rewrite(ctx, func(products []models.Product) []models.Product {
			for i := range products {
				products[i].ShowOnHomePage = true
			}
			count = len(products)
			return products
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "All products updated to show on home page! (%d)\n", count)
		return nil
	}
	return fmt.Errorf("unknown task %q", task)
}
