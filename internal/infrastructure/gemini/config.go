package gemini

import (
	"log/slog"
	"time"
)

// Config параметры клиента Gemini.
type Config struct {
	APIKey   string        // ключ API; если пуст, берутся Application Default Credentials
	Model    string        // идентификатор модели, например gemini-2.0-flash
	Endpoint string        // переопределение адреса API (прокси, тесты)
	Timeout  time.Duration // ограничение на один запрос
	Logger   *slog.Logger
}

// Option функциональная опция конфигурации.
type Option func(*Config)

// WithAPIKey задаёт ключ API.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel задаёт модель.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithEndpoint задаёт базовый адрес API.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) { c.Endpoint = endpoint }
}

// WithTimeout задаёт таймаут запроса.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger задаёт логгер.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig значения по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Model:   "gemini-2.0-flash",
		Timeout: 30 * time.Second,
		Logger:  slog.Default(),
	}
}
