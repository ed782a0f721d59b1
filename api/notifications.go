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

// NotificationsServiceClient posts in-app notifications to the external
// dispatcher over plain HTTP.
type NotificationsServiceClient struct {
	addr       string
	httpClient *http.Client
}

func NewNotificationsServiceClient(addr string) NotificationsServiceClient {
	if addr == "" {
		panic("NewNotificationsServiceClient: addr is empty")
	}

	return NotificationsServiceClient{
		addr: addr,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c NotificationsServiceClient) Notify(ctx context.Context, notification entities.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("could not marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/notifications", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send notification for user %s: %w", notification.UserID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code for POST /notifications: %d", resp.StatusCode)
	}

	return nil
}
