package notifier

import (
	"PeerFund_Auth/internal/logger"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const EventRefreshTokenRotated = "refresh_token_rotated"

type WebhookNotify struct {
	Username  string `json:"username"`
	Event     string `json:"event"`
	TimeStamp string `json:"timestamp"`
}

// WebhookNotifier отправляет события ротации refresh токена на webhook.
// С пустым URL ничего не отправляет.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// NotifyRotation отправляет событие в отдельной горутине; ошибки только логируются.
func (notifier *WebhookNotifier) NotifyRotation(ctx context.Context, username string) {
	if notifier == nil || notifier.url == "" {
		return
	}

	log := logger.From(ctx)
	payload := &WebhookNotify{
		Username:  username,
		Event:     EventRefreshTokenRotated,
		TimeStamp: time.Now().Format(time.RFC3339),
	}

	go func() {
		if err := notifier.Send(context.WithoutCancel(ctx), payload); err != nil {
			log.Warn("webhook_failed", slog.String("event", payload.Event), slog.String("err", err.Error()))
		}
	}()
}

func (notifier *WebhookNotifier) Send(ctx context.Context, payload *WebhookNotify) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка преобразования в json: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, notifier.url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса webhook: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := notifier.client.Do(request)
	if err != nil {
		return fmt.Errorf("ошибка отправки webhook: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook ответил статусом %d", response.StatusCode)
	}

	return nil
}
