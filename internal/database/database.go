package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/config"
	"storefront/internal/storage"
)

// ConnectMongo abre el cliente y verifica la conexión
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// un solo documento: no hace falta un pool grande
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// OpenBackend crea el backend del documento según STORE_DRIVER. La función
// devuelta libera las conexiones abiertas.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.DriverFile:
		logger.Info("📄 Using JSON file store", "path", cfg.DataFile)
		return storage.NewFileBackend(cfg.DataFile), noop, nil

	case config.DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		coll := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
		logger.Info("🍃 Using MongoDB store", "db", cfg.MongoDB, "collection", cfg.MongoCollection)
		return storage.NewMongoBackend(coll, cfg.DocumentID), func() error {
			return client.Disconnect(context.Background())
		}, nil

	case config.DriverRedis:
		client, err := ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("🧱 Using Redis store", "key", cfg.RedisKey)
		return storage.NewRedisBackend(client, cfg.RedisKey), client.Close, nil

	case config.DriverPostgres:
		db, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		backend := storage.NewPostgresBackend(db, cfg.DocumentID)
		if err := backend.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		logger.Info("🐘 Using PostgreSQL store", "id", cfg.DocumentID)
		return backend, db.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
