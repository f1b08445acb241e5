package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с почтовым сервисом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо через почтовый сервис
func (c *Client) Send(ctx context.Context, email EmailRequest) error {
	url := fmt.Sprintf("%s/internal/emails", c.baseURL)

	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendWithGracefulDegradation отправляет письмо с graceful degradation:
// недоступность почтового сервиса никогда не фатальна для операции
// бронирования — ошибка логируется и возвращается как ErrServiceDegraded
func (c *Client) SendWithGracefulDegradation(ctx context.Context, email EmailRequest) error {
	c.log.Info("Sending %s email to %s for booking #%d", email.Template, email.To, email.BookingNumber)

	if err := c.Send(ctx, email); err != nil {
		c.log.Error("Mailer unavailable, applying graceful degradation for booking #%d: %v",
			email.BookingNumber, err)
		return fmt.Errorf("%w: booking_number=%d, error=%v", ErrServiceDegraded, email.BookingNumber, err)
	}

	c.log.Info("Successfully sent %s email for booking #%d", email.Template, email.BookingNumber)
	return nil
}

// NopClient используется, когда отправка писем выключена в конфигурации
type NopClient struct{}

func (NopClient) Send(context.Context, EmailRequest) error { return nil }

func (NopClient) SendWithGracefulDegradation(context.Context, EmailRequest) error { return nil }
