package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "EXPIRY_SCANNER_CONFIG"
	geminiAPIKeyEnv    = "GEMINI_API_KEY"
	geminiModelEnv     = "GEMINI_MODEL"
	cameraURLEnv       = "CAMERA_URL"
	captureDriverEnv   = "CAPTURE_DRIVER"
	soonDaysEnv        = "EXPIRING_SOON_DAYS"
	holdSecondsEnv     = "INDICATOR_HOLD_SECONDS"
	indicatorDriverEnv = "INDICATOR_DRIVER"
	mqttBrokerEnv      = "MQTT_BROKER"
	telegramTokenEnv   = "TELEGRAM_TOKEN"
	telegramChatIDEnv  = "TELEGRAM_CHAT_ID"
	logLevelEnv        = "LOG_LEVEL"
	logFormatEnv       = "LOG_FORMAT"
)

// Драйверы захвата кадра
const (
	CaptureGoCV = "gocv"
	CaptureFile = "file"
)

// Драйверы линий индикации
const (
	IndicatorGPIO = "gpio"
	IndicatorMQTT = "mqtt"
	IndicatorLog  = "log"
)

// Config все настройки одного прогона
type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Shelf     ShelfConfig     `yaml:"shelf"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CameraConfig источник кадра
type CameraConfig struct {
	Driver         string `yaml:"driver"`          // gocv или file
	StreamAddress  string `yaml:"stream_address"`  // URL потока, номер устройства или путь к файлу
	JPEGQuality    int    `yaml:"jpeg_quality"`    // 1..100
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 0 без ограничения
}

// GeminiConfig удалённая модель
type GeminiConfig struct {
	ServiceCredential string `yaml:"service_credential"` // ключ API
	ModelIdentifier   string `yaml:"model_identifier"`
	Endpoint          string `yaml:"endpoint"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

// ShelfConfig пороги классификации
type ShelfConfig struct {
	ExpiringSoonThresholdDays int `yaml:"expiring_soon_threshold_days"`
}

// IndicatorConfig линии индикации
type IndicatorConfig struct {
	Driver              string      `yaml:"driver"` // gpio, mqtt или log
	HoldDurationSeconds int         `yaml:"indicator_hold_duration_seconds"`
	Lines               LinesConfig `yaml:"lines"`
	MQTT                MQTTConfig  `yaml:"mqtt"`
}

// LinesConfig имя линии для каждой группы
type LinesConfig struct {
	Expired      string `yaml:"expired"`
	ExpiringSoon string `yaml:"expiring_soon"`
	Valid        string `yaml:"valid"`
	Unparseable  string `yaml:"unparseable"`
}

// MQTTConfig брокер для драйвера mqtt
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         byte   `yaml:"qos"`
}

// TelegramConfig уведомление об итоге. При пустом токене уведомления выключены.
type TelegramConfig struct {
	Token    string `yaml:"token"`
	ChatID   int64  `yaml:"chat_id"`
	Endpoint string `yaml:"endpoint"` // шаблон URL Bot API, по умолчанию api.telegram.org
}

// LoggingConfig уровень и формат логов
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text или json
}

// HoldDuration время, на которое включается линия.
func (c IndicatorConfig) HoldDuration() time.Duration {
	return time.Duration(c.HoldDurationSeconds) * time.Second
}

// Timeout ограничение на захват кадра.
func (c CameraConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout ограничение на запрос к модели.
func (c GeminiConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default значения по умолчанию. Пины в BCM-нумерации исходной платы.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			Driver:         CaptureGoCV,
			JPEGQuality:    90,
			TimeoutSeconds: 15,
		},
		Gemini: GeminiConfig{
			ModelIdentifier: "gemini-2.0-flash",
			TimeoutSeconds:  30,
		},
		Shelf: ShelfConfig{ExpiringSoonThresholdDays: 14},
		Indicator: IndicatorConfig{
			Driver:              IndicatorGPIO,
			HoldDurationSeconds: 10,
			Lines: LinesConfig{
				Expired:      "GPIO27",
				ExpiringSoon: "GPIO17",
				Valid:        "GPIO22",
				Unparseable:  "GPIO27",
			},
			MQTT: MQTTConfig{
				ClientID:    "expiry-scanner",
				TopicPrefix: "expiry-scanner/indicators",
			},
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл
// (path или EXPIRY_SCANNER_CONFIG), затем переменные окружения.
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Gemini.ServiceCredential, geminiAPIKeyEnv)
	setString(&c.Gemini.ModelIdentifier, geminiModelEnv)
	setString(&c.Camera.StreamAddress, cameraURLEnv)
	setString(&c.Camera.Driver, captureDriverEnv)
	setString(&c.Indicator.Driver, indicatorDriverEnv)
	setString(&c.Indicator.MQTT.Broker, mqttBrokerEnv)
	setString(&c.Telegram.Token, telegramTokenEnv)
	setString(&c.Logging.Level, logLevelEnv)
	setString(&c.Logging.Format, logFormatEnv)

	if err := setInt(&c.Shelf.ExpiringSoonThresholdDays, soonDaysEnv); err != nil {
		return err
	}
	if err := setInt(&c.Indicator.HoldDurationSeconds, holdSecondsEnv); err != nil {
		return err
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", telegramChatIDEnv, err)
		}
		c.Telegram.ChatID = id
	}

	return nil
}

// Validate проверяет, что конфигурации хватает для прогона.
func (c *Config) Validate() error {
	var errs []error

	if c.Camera.StreamAddress == "" {
		errs = append(errs, fmt.Errorf("camera stream address is required (%s)", cameraURLEnv))
	}
	switch c.Camera.Driver {
	case CaptureGoCV, CaptureFile:
	default:
		errs = append(errs, fmt.Errorf("unknown capture driver %q", c.Camera.Driver))
	}
	if c.Camera.JPEGQuality < 1 || c.Camera.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality %d out of range 1..100", c.Camera.JPEGQuality))
	}
	if c.Camera.TimeoutSeconds < 0 || c.Gemini.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}

	if c.Gemini.ModelIdentifier == "" {
		errs = append(errs, errors.New("gemini model identifier is required"))
	}

	if c.Shelf.ExpiringSoonThresholdDays < 0 {
		errs = append(errs, errors.New("expiring soon threshold must not be negative"))
	}

	if c.Indicator.HoldDurationSeconds < 0 {
		errs = append(errs, errors.New("indicator hold duration must not be negative"))
	}
	switch c.Indicator.Driver {
	case IndicatorGPIO, IndicatorLog:
	case IndicatorMQTT:
		if c.Indicator.MQTT.Broker == "" {
			errs = append(errs, fmt.Errorf("mqtt broker is required for the mqtt driver (%s)", mqttBrokerEnv))
		}
		if c.Indicator.MQTT.QoS > 2 {
			errs = append(errs, fmt.Errorf("mqtt qos %d out of range 0..2", c.Indicator.MQTT.QoS))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown indicator driver %q", c.Indicator.Driver))
	}
	lines := c.Indicator.Lines
	if lines.Expired == "" || lines.ExpiringSoon == "" || lines.Valid == "" || lines.Unparseable == "" {
		errs = append(errs, errors.New("every indicator line must be named"))
	}

	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		errs = append(errs, fmt.Errorf("telegram chat id is required when a token is set (%s)", telegramChatIDEnv))
	}

	return errors.Join(errs...)
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) error {
	v := os.Getenv(env)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", env, err)
	}
	*dst = n
	return nil
}
