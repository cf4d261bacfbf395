package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Drivers de almacenamiento soportados
const (
	DriverFile     = "file"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Port string `yaml:"port"`

	StoreDriver     string `yaml:"store_driver"`
	DataFile        string `yaml:"data_file"`
	DocumentID      string `yaml:"document_id"`
	MongoURI        string `yaml:"mongo_uri"`
	MongoDB         string `yaml:"mongo_db"`
	MongoCollection string `yaml:"mongo_collection"`
	RedisURL        string `yaml:"redis_url"`
	RedisKey        string `yaml:"redis_key"`
	DatabaseURL     string `yaml:"database_url"`

	// LegacyDegrade reproduce el comportamiento original: documento ilegible
	// se reemplaza por el documento por defecto y los errores de escritura se
	// registran sin propagarse.
	LegacyDegrade   bool `yaml:"store_legacy_degrade"`
	SerializeWrites bool `yaml:"store_serialize_writes"`

	UploadDir string `yaml:"upload_dir"`
	StaticDir string `yaml:"static_dir"`

	ProductCacheTTL time.Duration `yaml:"product_cache_ttl"`
	KafkaBrokers    []string      `yaml:"kafka_brokers"`
	CORSOrigins     []string      `yaml:"cors_origins"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default devuelve la configuración para desarrollo local
func Default() *Config {
	return &Config{
		Port:            "3001",
		StoreDriver:     DriverFile,
		DataFile:        "data/db.json",
		DocumentID:      "storefront",
		MongoDB:         "storefront",
		MongoCollection: "documents",
		RedisKey:        "storefront:db",
		UploadDir:       "public/uploads",
		StaticDir:       "dist",
		ProductCacheTTL: 15 * time.Second,
		CORSOrigins:     []string{"*"},
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	cfg := Default()
	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			log.Println("⚠️ Error loading config file:", err)
		}
	}
	cfg.LoadFromEnv()
	return cfg
}

// LoadFromFile aplica un archivo YAML sobre los valores actuales
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv sobrescribe con variables de entorno; el entorno siempre gana
func (c *Config) LoadFromEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", c.StoreDriver))
	c.DataFile = getEnv("DATA_FILE", c.DataFile)
	c.DocumentID = getEnv("DOCUMENT_ID", c.DocumentID)
	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDB = getEnv("MONGO_DB", c.MongoDB)
	c.MongoCollection = getEnv("MONGO_COLLECTION", c.MongoCollection)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.RedisKey = getEnv("REDIS_KEY", c.RedisKey)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.LegacyDegrade = getBool("STORE_LEGACY_DEGRADE", c.LegacyDegrade)
	c.SerializeWrites = getBool("STORE_SERIALIZE_WRITES", c.SerializeWrites)
	c.UploadDir = getEnv("UPLOAD_DIR", c.UploadDir)
	c.StaticDir = getEnv("STATIC_DIR", c.StaticDir)
	c.ProductCacheTTL = getDuration("PRODUCT_CACHE_TTL", c.ProductCacheTTL)
	c.KafkaBrokers = getList("KAFKA_BROKERS", c.KafkaBrokers)
	c.CORSOrigins = getList("CORS_ORIGINS", c.CORSOrigins)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// Validate verifica que el driver elegido tenga lo que necesita
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the %s driver", c.StoreDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the %s driver", c.StoreDriver)
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s driver", c.StoreDriver)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.ProductCacheTTL < 0 {
		return fmt.Errorf("PRODUCT_CACHE_TTL cannot be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

// getList separa por comas e ignora elementos vacíos
func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
