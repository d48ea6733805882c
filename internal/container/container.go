package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expiry-scanner/config"
	app "expiry-scanner/internal/application"
	"expiry-scanner/internal/domain/entity"
	"expiry-scanner/internal/domain/port"
	"expiry-scanner/internal/infrastructure/gemini"
	"expiry-scanner/internal/infrastructure/indicator"
	"expiry-scanner/internal/infrastructure/telegram"
	"expiry-scanner/internal/infrastructure/vision"
)

// Container собранные сервисы и ресурсы, которые нужно закрыть
type Container struct {
	InspectionService *app.InspectionService

	driver port.IndicatorDriver
}

// New собирает адаптеры по конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	source, err := newFrameSource(cfg.Camera)
	if err != nil {
		return nil, err
	}

	extractor, err := gemini.New(ctx,
		gemini.WithAPIKey(cfg.Gemini.ServiceCredential),
		gemini.WithModel(cfg.Gemini.ModelIdentifier),
		gemini.WithEndpoint(cfg.Gemini.Endpoint),
		gemini.WithTimeout(cfg.Gemini.Timeout()),
		gemini.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	notifier := newNotifier(cfg.Telegram, logger)

	driver, err := newIndicatorDriver(cfg.Indicator, logger)
	if err != nil {
		return nil, err
	}

	panel, err := newSignalPanel(driver, cfg.Indicator.Lines, logger)
	if err != nil {
		_ = driver.Close()
		return nil, err
	}

	inspectionService := app.NewInspectionService(
		source,
		vision.NewJPEGEncoder(cfg.Camera.JPEGQuality),
		extractor,
		panel,
		notifier,
		app.InspectionOptions{
			ExpiringSoonDays: cfg.Shelf.ExpiringSoonThresholdDays,
			HoldDuration:     cfg.Indicator.HoldDuration(),
		},
		logger,
	)

	return &Container{
		InspectionService: inspectionService,
		driver:            driver,
	}, nil
}

// Close освобождает драйвер индикации.
func (c *Container) Close() error {
	if c.driver == nil {
		return nil
	}
	return c.driver.Close()
}

// newNotifier возвращает nil, если уведомления выключены или Telegram
// недоступен: прогон идёт без них.
func newNotifier(cfg config.TelegramConfig, logger *slog.Logger) port.Notifier {
	if cfg.Token == "" {
		return nil
	}
	n, err := telegram.NewNotifier(cfg.Token, cfg.Endpoint, cfg.ChatID, logger)
	if err != nil {
		logger.Warn("telegram notifier disabled", "error", err)
		return nil
	}
	return n
}

func newFrameSource(cfg config.CameraConfig) (port.FrameSource, error) {
	switch cfg.Driver {
	case config.CaptureGoCV:
		return vision.WithTimeout(vision.NewGoCVSource(cfg.StreamAddress), cfg.Timeout()), nil
	case config.CaptureFile:
		return vision.NewFileSource(cfg.StreamAddress), nil
	default:
		return nil, fmt.Errorf("unknown capture driver %q", cfg.Driver)
	}
}

func newIndicatorDriver(cfg config.IndicatorConfig, logger *slog.Logger) (port.IndicatorDriver, error) {
	switch cfg.Driver {
	case config.IndicatorGPIO:
		return indicator.NewGPIODriver()
	case config.IndicatorMQTT:
		return indicator.NewMQTTDriver(indicator.MQTTConfig{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         cfg.MQTT.QoS,
		}, logger)
	case config.IndicatorLog:
		return indicator.NewLogDriver(logger), nil
	default:
		return nil, fmt.Errorf("unknown indicator driver %q", cfg.Driver)
	}
}

func newSignalPanel(driver port.IndicatorDriver, lines config.LinesConfig, logger *slog.Logger) (*app.SignalPanel, error) {
	names := map[entity.ShelfLife]string{
		entity.ShelfLifeExpired:      lines.Expired,
		entity.ShelfLifeExpiringSoon: lines.ExpiringSoon,
		entity.ShelfLifeValid:        lines.Valid,
		entity.ShelfLifeUnparseable:  lines.Unparseable,
	}

	panelLines := make(map[entity.ShelfLife]port.IndicatorLine, len(names))
	var errs []error
	for shelfLife, name := range names {
		line, err := driver.Line(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s line: %w", shelfLife, err))
			continue
		}
		panelLines[shelfLife] = line
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return app.NewSignalPanel(panelLines, logger)
}
