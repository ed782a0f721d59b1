package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"venues/entities"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MailerServiceClient asks the external mailer to render and send receipt
// and ticket emails.
type MailerServiceClient struct {
	addr       string
	httpClient *http.Client
}

func NewMailerServiceClient(addr string) MailerServiceClient {
	if addr == "" {
		panic("NewMailerServiceClient: addr is empty")
	}

	return MailerServiceClient{
		addr: addr,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c MailerServiceClient) SendReceipt(ctx context.Context, organizerID string, receipt entities.Receipt) error {
	body := struct {
		RecipientID string           `json:"recipient_id"`
		Receipt     entities.Receipt `json:"receipt"`
	}{
		RecipientID: organizerID,
		Receipt:     receipt,
	}

	return c.post(ctx, "/emails/receipt", body)
}

func (c MailerServiceClient) SendTicket(ctx context.Context, buyerID string, ticket entities.Ticket) error {
	body := struct {
		RecipientID string          `json:"recipient_id"`
		Ticket      entities.Ticket `json:"ticket"`
	}{
		RecipientID: buyerID,
		Ticket:      ticket,
	}

	return c.post(ctx, "/emails/ticket", body)
}

func (c MailerServiceClient) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not marshal mailer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build mailer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not call mailer %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code for POST %s: %d", path, resp.StatusCode)
	}

	return nil
}
