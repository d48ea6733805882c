package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	genai "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"expiry-scanner/internal/domain/port"
)

var adcScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/generative-language.retriever",
}

// Extractor извлекает срок годности через Gemini generateContent.
type Extractor struct {
	svc     *genai.Service
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New создаёт экстрактор. Без ключа API используются учётные данные по умолчанию.
func New(ctx context.Context, opts ...Option) (*Extractor, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini: model is required")
	}

	var clientOpts []option.ClientOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	} else {
		creds, err := google.FindDefaultCredentials(ctx, adcScopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoCredential, err)
		}
		clientOpts = append(clientOpts, option.WithTokenSource(creds.TokenSource))
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := genai.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: new service: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		svc:     svc,
		model:   modelResource(cfg.Model),
		timeout: cfg.Timeout,
		logger:  logger.With("component", "gemini"),
	}, nil
}

// Extract отправляет инструкцию и изображение одним запросом и склеивает
// текстовые части первого кандидата.
func (e *Extractor) Extract(ctx context.Context, req port.ExtractionRequest) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	call := e.svc.Models.GenerateContent(e.model, &genai.GenerateContentRequest{
		Contents: []*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: req.Instruction},
				{InlineData: &genai.Blob{
					MimeType: req.MimeType,
					Data:     base64.StdEncoding.EncodeToString(req.Image),
				}},
			},
		}},
		GenerationConfig: &genai.GenerationConfig{
			Temperature: req.Temperature,
			// Нулевая температура иначе выпадает из JSON.
			ForceSendFields: []string{"Temperature"},
		},
	})

	resp, err := call.Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return "", &APIError{StatusCode: gerr.Code, Message: gerr.Message}
		}
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	// Пустой ответ модели не ошибка транспорта: даты в нём просто нет.
	text := strings.TrimSpace(sb.String())

	e.logger.Debug("generate content", "model", e.model, "latency_ms", time.Since(start).Milliseconds())
	return text, nil
}

func modelResource(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

var _ port.ExpiryExtractor = (*Extractor)(nil)
