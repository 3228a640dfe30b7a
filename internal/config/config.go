package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/microshop/storefront/internal/pkg/retry"
)

// Store drivers for the order collection.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type HTTP struct {
	CatalogAddr string
	CartAddr    string
	OrderAddr   string
}

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Store struct {
	Driver string // "file" or "postgres"
	Path   string // file driver: path of the JSON document
	Pg     Postgres
}

type Catalog struct {
	BaseURL  string
	CacheCap int
	Timeout  time.Duration
}

type Kafka struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether order events should be published at all. No
// brokers configured means the publisher is a no-op.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 && k.Topic != "" }

type Config struct {
	HTTP    HTTP
	Store   Store
	Catalog Catalog
	Retry   retry.Policy
	Kafka   Kafka
}

// Load fatals on error so main() stays flat.
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTP: HTTP{
			CatalogAddr: envDefault("CATALOG_ADDR", ":4001"),
			CartAddr:    envDefault("CART_ADDR", ":4002"),
			OrderAddr:   envDefault("ORDER_ADDR", ":4003"),
		},
		Store: Store{
			Driver: strings.ToLower(envDefault("ORDER_STORE_DRIVER", DriverFile)),
			Path:   envDefault("ORDER_STORE_PATH", "data/orders.json"),
			Pg: Postgres{
				Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
				Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
				DB:       strings.TrimSpace(os.Getenv("PG_DB")),
				User:     strings.TrimSpace(os.Getenv("PG_USER")),
				Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
				SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
			},
		},
		Catalog: Catalog{
			BaseURL:  envDefault("CATALOG_BASE_URL", "http://localhost:4001"),
			CacheCap: envInt("PRODUCT_CACHE_CAP", 128),
			Timeout:  envDurationMS("CATALOG_TIMEOUT", 5*time.Second),
		},
		Retry: retry.Policy{
			Attempts:     envInt("RETRY_ATTEMPTS", 3),
			Base:         envDurationMS("RETRY_BASE", 100*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 2*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},
		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   strings.TrimSpace(envDefault("KAFKA_TOPIC", "order-events")),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case DriverFile:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("ORDER_STORE_PATH must not be empty with the file driver")
		}
	case DriverPostgres:
		var missing []string
		req := map[string]string{
			"PG_HOST":     c.Store.Pg.Host,
			"PG_DB":       c.Store.Pg.DB,
			"PG_USER":     c.Store.Pg.User,
			"PG_PASSWORD": c.Store.Pg.Password,
		}
		for k, v := range req {
			if strings.TrimSpace(v) == "" {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return &missingEnvError{Keys: missing}
		}
	default:
		return fmt.Errorf("unknown ORDER_STORE_DRIVER %q", c.Store.Driver)
	}

	if _, err := url.Parse(c.Catalog.BaseURL); err != nil {
		return fmt.Errorf("invalid CATALOG_BASE_URL: %w", err)
	}
	if c.Catalog.CacheCap <= 0 {
		log.Printf("PRODUCT_CACHE_CAP is %d, adjusting to 1", c.Catalog.CacheCap)
	}
	if c.Retry.Attempts < 0 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 0", c.Retry.Attempts)
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (p Postgres) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.DB,
	}
	q := url.Values{}
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
