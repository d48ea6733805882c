package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"expiry-scanner/internal/domain/entity"
	"expiry-scanner/internal/domain/port"
)

// ExpiryInstruction фиксированная инструкция для модели.
const ExpiryInstruction = "Extract only the expiry date from this medicine packaging image. " +
	"Return strictly in 'MM/YYYY' or 'DD/MM/YYYY' format. " +
	"If not found, say 'NOT FOUND'."

// DefaultNotifyTimeout ограничение на отправку уведомления.
const DefaultNotifyTimeout = 10 * time.Second

// InspectionOptions параметры одного прогона.
type InspectionOptions struct {
	ExpiringSoonDays int
	HoldDuration     time.Duration
	NotifyTimeout    time.Duration
	Now              func() time.Time
}

// InspectionService проводит один прогон: кадр, модель, разбор, индикация.
type InspectionService struct {
	source    port.FrameSource
	encoder   port.ImageEncoder
	extractor port.ExpiryExtractor
	panel     *SignalPanel
	notifier  port.Notifier
	opts      InspectionOptions
	logger    *slog.Logger
}

// NewInspectionService создаёт сервис проверки срока годности. notifier может быть nil.
func NewInspectionService(
	source port.FrameSource,
	encoder port.ImageEncoder,
	extractor port.ExpiryExtractor,
	panel *SignalPanel,
	notifier port.Notifier,
	opts InspectionOptions,
	logger *slog.Logger,
) *InspectionService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = DefaultNotifyTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InspectionService{
		source:    source,
		encoder:   encoder,
		extractor: extractor,
		panel:     panel,
		notifier:  notifier,
		opts:      opts,
		logger:    logger,
	}
}

// Run выполняет один прогон. Ошибки захвата, кодирования и экстракции
// возвращаются как error; нераспознанная дата считается нормальным итогом
// ShelfLifeUnparseable. Все линии индикации выключаются на любом выходе.
func (s *InspectionService) Run(ctx context.Context) (result *entity.Inspection, err error) {
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID)

	if err := s.panel.ReleaseAll(ctx); err != nil {
		return nil, fmt.Errorf("reset indicators: %w", err)
	}
	defer func() {
		if relErr := s.panel.ReleaseAll(context.WithoutCancel(ctx)); relErr != nil {
			log.Error("release indicators", "error", relErr)
			err = errors.Join(err, relErr)
		}
	}()

	log.Info("capturing image from camera")
	frame, err := s.source.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrCapture, err)
	}

	img, err := s.encoder.Encode(frame)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrEncode, err)
	}

	log.Info("analyzing image", "bytes", len(img))
	text, err := s.extractor.Extract(ctx, port.ExtractionRequest{
		Image:       img,
		MimeType:    s.encoder.MimeType(),
		Instruction: ExpiryInstruction,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrExtraction, err)
	}
	text = strings.TrimSpace(text)
	log.Info("extractor output", "text", text)

	result = s.classify(runID, text)
	if result.ShelfLife == entity.ShelfLifeUnparseable {
		log.Warn("could not parse expiry date", "error", result.ParseErr)
	} else {
		log.Info("expiry classified",
			"today", result.Today.Format(time.DateOnly),
			"expiry", result.Expiry.String(),
			"days_left", result.DaysLeft,
			"shelf_life", result.ShelfLife)
	}
	log.Info(result.Summary())

	holdErr := s.panel.Hold(ctx, result.ShelfLife, s.opts.HoldDuration)
	s.notify(ctx, log, result)

	if holdErr != nil {
		return result, fmt.Errorf("signal %s: %w", result.ShelfLife, holdErr)
	}
	return result, nil
}

// classify разбирает текст и считает группу относительно текущей даты.
func (s *InspectionService) classify(runID, text string) *entity.Inspection {
	result := &entity.Inspection{
		RunID:   runID,
		RawText: text,
		Today:   s.opts.Now(),
	}

	expiry, err := entity.ParseExpiry(text)
	if err != nil {
		result.ShelfLife = entity.ShelfLifeUnparseable
		result.ParseErr = err
		return result
	}

	result.Expiry = &expiry
	result.DaysLeft = entity.DaysLeft(expiry, result.Today)
	result.ShelfLife = entity.Classify(expiry, result.Today, s.opts.ExpiringSoonDays)
	return result
}

// notify отправляет итог оператору после индикации. Отправка не отменяется
// вместе с прогоном, но ограничена NotifyTimeout; ошибка не влияет на результат.
func (s *InspectionService) notify(ctx context.Context, log *slog.Logger, result *entity.Inspection) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.NotifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, result.Summary()); err != nil {
		log.Warn("notify outcome", "error", err)
	}
}
