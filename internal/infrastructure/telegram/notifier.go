package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"expiry-scanner/internal/domain/port"
)

// Notifier отправляет итог проверки в чат Telegram
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// requestTimeout ограничение на один HTTP-запрос к Bot API
const requestTimeout = 10 * time.Second

// NewNotifier создаёт отправителя для чата chatID. Пустой endpoint
// означает api.telegram.org.
func NewNotifier(token, endpoint string, chatID int64, logger *slog.Logger) (*Notifier, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return newNotifier(token, endpoint, chatID, logger)
}

func newNotifier(token, endpoint string, chatID int64, logger *slog.Logger) (*Notifier, error) {
	if token == "" {
		return nil, errors.New("telegram token is required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := &http.Client{Timeout: requestTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	logger.Info("telegram notifier authorized", "account", api.Self.UserName, "chat_id", chatID)

	return &Notifier{api: api, chatID: chatID}, nil
}

// Notify отправляет текстовое сообщение. Bot API не принимает context,
// поэтому отправка ждётся до отмены ctx.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text))
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send telegram message: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ port.Notifier = (*Notifier)(nil)
