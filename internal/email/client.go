// Package email реализует клиент внешнего почтового API в формате Postmark.
//
// Письмо отправляется одним POST-запросом на {api_base_url}/email с заголовком
// X-Postmark-Server-Token; любой не-2xx ответ считается ошибкой доставки.
// Повторных попыток клиент не делает.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client отправляет письма через HTTP API почтового сервиса.
type Client struct {
	httpClient *http.Client
	apiBaseURL string
	sender     string
	authToken  string
}

// sendEmailRequest тело запроса почтового API. Имена полей — PascalCase,
// как того требует Postmark.
type sendEmailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
}

// New создает клиент почтового API с фиксированным таймаутом запроса.
func New(apiBaseURL, sender, authToken string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiBaseURL: apiBaseURL,
		sender:     sender,
		authToken:  authToken,
	}
}

// Send отправляет HTML-письмо получателю recipient.
func (c *Client) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	const op = "email.Send"

	body, err := json.Marshal(sendEmailRequest{
		From:     c.sender,
		To:       recipient,
		Subject:  subject,
		HtmlBody: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	url := c.apiBaseURL + "/email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}
	return nil
}
