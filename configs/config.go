package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/coastlinevibe/eubiosis/internal/checkout"
	"github.com/coastlinevibe/eubiosis/internal/payment"
	"github.com/coastlinevibe/eubiosis/internal/pricing"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	MySQL struct {
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"mysql"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Session struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"session"`

	Rabbit struct {
		URL string `koanf:"url"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers []string `koanf:"brokers"`
		Topic   string   `koanf:"topic"`
		GroupID string   `koanf:"group_id"`
	} `koanf:"kafka"`

	// The funnel's business rules are named, swappable configurations:
	// the canonical values ship in code, yaml overrides select variants.
	Pricing    pricing.Policy            `koanf:"pricing"`
	Validation checkout.ValidationPolicy `koanf:"validation"`
	Payment    payment.Config            `koanf:"payment"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env overlay (dev/staging/prod). Optional for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix EUBIOSIS_, nested with __)
	// e.g. EUBIOSIS_MYSQL__DSN, EUBIOSIS_REDIS__PASSWORD
	if err := k.Load(env.Provider("EUBIOSIS_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "EUBIOSIS_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	// Canonical business rules first; yaml only overrides what it names.
	cfg := Config{
		Pricing:    pricing.Canonical(),
		Validation: checkout.CanonicalValidationPolicy(),
		Payment:    payment.DefaultConfig(),
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl required")
	}
	return nil
}
