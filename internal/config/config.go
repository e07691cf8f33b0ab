package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

type Console struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	API         API `envPrefix:"API_"`
	Kafka       Kafka
	Redis       Redis
	Telemetry   Telemetry
	Currency    string `env:"CURRENCY" envDefault:"INR"`
}

type Auditor struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Kafka       Kafka
	Postgres    Postgres
	Telemetry   Telemetry
}

type Migrate struct {
	Log      Log
	Postgres Postgres
	Source   string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`
}

func (h HTTPServer) Addr() string {
	return h.Host + ":" + h.Port
}

type API struct {
	BaseURL string        `env:"BASE_URL,required"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"order.status.changed"`
	GroupID string   `env:"KAFKA_GROUP_ID" envDefault:"status-auditor"`
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

type Redis struct {
	Addr        string        `env:"REDIS_ADDR"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB" envDefault:"0"`
	InflightTTL time.Duration `env:"INFLIGHT_TTL" envDefault:"30s"`
}

type Postgres struct {
	URL string `env:"POSTGRES_URL,required"`
}

type Telemetry struct {
	Enabled        bool    `env:"TELEMETRY_ENABLED" envDefault:"true"`
	OTLPEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	ServiceVersion string  `env:"SERVICE_VERSION" envDefault:"dev"`
	SampleRatio    float64 `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1"`
}

// LoadConsole reads an optional .env file and then the process environment.
func LoadConsole() (*Console, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return ParseConsole(nil)
}

// ParseConsole parses from environ, or from the process environment when
// environ is nil.
func ParseConsole(environ map[string]string) (*Console, error) {
	cfg, err := parse[Console](environ)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.CurrencyUnit(); err != nil {
		return nil, err
	}
	if _, err := cfg.Log.level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Console) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("invalid CURRENCY %q: %w", c.Currency, err)
	}
	return unit, nil
}

func LoadAuditor() (*Auditor, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return ParseAuditor(nil)
}

func ParseAuditor(environ map[string]string) (*Auditor, error) {
	cfg, err := parse[Auditor](environ)
	if err != nil {
		return nil, err
	}
	if !cfg.Kafka.Enabled() {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if _, err := cfg.Log.level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadMigrate() (*Migrate, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return parse[Migrate](nil)
}

func parse[T any](environ map[string]string) (*T, error) {
	cfg := new(T)
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", l.Level, err)
	}
	return level, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
