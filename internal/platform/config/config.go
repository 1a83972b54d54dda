package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	RetryCount int           `yaml:"retry_count"`
	RetryWait  time.Duration `yaml:"retry_wait"`
}

// ProviderConfig describe una fuente. Type: forex_factory | investing_com | rss.
type ProviderConfig struct {
	Type    string     `yaml:"type"`
	Name    string     `yaml:"name"`     // opcional; default = type
	BaseURL string     `yaml:"base_url"` // default según type
	Zone    string     `yaml:"zone"`     // zona de publicación (rss); default UTC
	HTTP    HTTPConfig `yaml:"http"`
}

type OutputConfig struct {
	Formats []string `yaml:"formats"` // csv, json, postgres, kafka
	Dir     string   `yaml:"dir"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type KafkaConfig struct {
	Brokers []string      `yaml:"brokers"`
	Topic   string        `yaml:"topic"`
	Timeout time.Duration `yaml:"timeout"`
}

type MQTTConfig struct {
	Broker   string        `yaml:"broker"` // tcp://host:1883
	ClientID string        `yaml:"client_id"`
	Topic    string        `yaml:"topic"`
	Timeout  time.Duration `yaml:"timeout"`
}

type NotifyConfig struct {
	Mode     string `yaml:"mode"`     // "" | upcoming
	Window   string `yaml:"window"`   // 24h, 2d, 90m
	Notifier string `yaml:"notifier"` // stdout | mqtt
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	IngestOnBoot bool   `yaml:"ingest_on_boot"`
}

type Config struct {
	Providers  []ProviderConfig `yaml:"providers"`
	Countries  []string         `yaml:"countries"`
	Importance []string         `yaml:"importance"`
	Timezone   string           `yaml:"timezone"`
	Output     OutputConfig     `yaml:"output"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	Notify     NotifyConfig     `yaml:"notify"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
}

const (
	ProviderForexFactory = "forex_factory"
	ProviderInvesting    = "investing_com"
	ProviderRSS          = "rss"

	DefaultTimezone = "Europe/Madrid"
	DefaultOutDir   = "./data"
	DefaultWindow   = "24h"
	DefaultPort     = "8080"
)

// Default devuelve la configuración sin archivo ni entorno.
func Default() Config {
	return Config{
		Providers: []ProviderConfig{
			{Type: ProviderForexFactory},
			{Type: ProviderInvesting},
		},
		Timezone: DefaultTimezone,
		Output:   OutputConfig{Formats: []string{"csv"}, Dir: DefaultOutDir},
		Kafka:    KafkaConfig{Topic: "economic-calendar.events", Timeout: 10 * time.Second},
		MQTT: MQTTConfig{
			ClientID: "economic-calendar",
			Topic:    "calendar/upcoming",
			Timeout:  5 * time.Second,
		},
		Notify: NotifyConfig{Window: DefaultWindow, Notifier: "stdout"},
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Port: DefaultPort},
	}
}

// Load aplica, en orden: defaults, archivo YAML (si path != ""), .env y
// variables de entorno. Los flags de la CLI se aplican después, fuera de aquí.
func Load(path string) (Config, error) {
	c := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env es opcional
	_ = godotenv.Load()

	ApplyEnv(&c, os.Getenv)

	if err := c.Finalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Finalize completa defaults y valida. Se vuelve a llamar tras aplicar flags.
func (c *Config) Finalize() error {
	c.fillDefaults()
	return c.Validate()
}

// ApplyEnv sobreescribe campos con variables de entorno no vacías.
func ApplyEnv(c *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	list := func(dst *[]string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = SplitList(v)
		}
	}

	if v := strings.TrimSpace(getenv("CALENDAR_PROVIDERS")); v != "" {
		c.Providers = ProvidersFromNames(SplitList(v), c.Providers)
	}
	list(&c.Countries, "CALENDAR_COUNTRIES")
	list(&c.Importance, "CALENDAR_IMPORTANCE")
	set(&c.Timezone, "CALENDAR_TZ")
	list(&c.Output.Formats, "CALENDAR_OUT_FORMAT")
	set(&c.Output.Dir, "CALENDAR_OUT_DIR")
	set(&c.Notify.Mode, "CALENDAR_NOTIFY")
	set(&c.Notify.Window, "CALENDAR_NOTIFY_WINDOW")
	set(&c.Notify.Notifier, "CALENDAR_NOTIFIER")
	set(&c.Postgres.DSN, "DB_DSN")
	list(&c.Kafka.Brokers, "KAFKA_BROKERS")
	set(&c.Kafka.Topic, "KAFKA_TOPIC")
	set(&c.MQTT.Broker, "MQTT_BROKER")
	set(&c.MQTT.Topic, "MQTT_TOPIC")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.Log.Format, "LOG_FORMAT")
	set(&c.Server.Port, "PORT")
	if v := strings.TrimSpace(getenv("CALENDAR_INGEST_ON_BOOT")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.IngestOnBoot = b
		}
	}
}

// ProvidersFromNames conserva la configuración existente de cada tipo nombrado.
func ProvidersFromNames(names []string, current []ProviderConfig) []ProviderConfig {
	byType := make(map[string]ProviderConfig, len(current))
	for _, p := range current {
		byType[p.Type] = p
	}
	out := make([]ProviderConfig, 0, len(names))
	for _, n := range names {
		if p, ok := byType[n]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, ProviderConfig{Type: n})
	}
	return out
}

func (c *Config) fillDefaults() {
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutDir
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"csv"}
	}
	if c.Notify.Window == "" {
		c.Notify.Window = DefaultWindow
	}
	if c.Notify.Notifier == "" {
		c.Notify.Notifier = "stdout"
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	for i := range c.Providers {
		c.Providers[i].Type = strings.TrimSpace(c.Providers[i].Type)
		if c.Providers[i].Name == "" {
			c.Providers[i].Name = c.Providers[i].Type
		}
	}
}

func (c Config) Validate() error {
	if len(c.Providers) == 0 {
		return errors.New("config: at least one provider is required")
	}
	for _, p := range c.Providers {
		if p.Type == "" {
			return errors.New("config: provider type is required")
		}
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Notify.Mode != "" && c.Notify.Mode != "upcoming" {
		return fmt.Errorf("config: unknown notify mode %q", c.Notify.Mode)
	}
	return nil
}

// HasFormat indica si fmt está entre los formatos de salida.
func (c Config) HasFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// SplitList separa por comas, descartando vacíos.
func SplitList(s string) []string {
	fields := strings.Split(s, ",")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
