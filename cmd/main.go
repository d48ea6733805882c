package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"expiry-scanner/config"
	"expiry-scanner/internal/container"
	"expiry-scanner/internal/domain/entity"
	"expiry-scanner/internal/logging"
)

// Коды завершения процесса
const (
	exitSignaled    = 0 // одна из трёх групп показана
	exitFailure     = 1 // конфигурация, камера, кодирование или модель
	exitUnparseable = 2 // дату не удалось разобрать
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config (default $EXPIRY_SCANNER_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Собираем адаптеры и сервис проверки
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build scanner", "error", err)
		return exitFailure
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("close indicator driver", "error", err)
		}
	}()

	result, err := c.InspectionService.Run(ctx)
	if err != nil {
		logger.Error("inspection failed", "error", err)
	}
	return exitCode(result, err)
}

// exitCode переводит итог прогона в код завершения.
func exitCode(result *entity.Inspection, err error) int {
	switch {
	case err != nil || result == nil:
		return exitFailure
	case result.ShelfLife == entity.ShelfLifeUnparseable:
		return exitUnparseable
	default:
		return exitSignaled
	}
}
