package clients

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/nutslove/otel-instrumentation-demo/internal/orders"
)

type notificationRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

// NotificationClient talks to the notification service.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNotificationClient creates a client for the notification service at
// baseURL.
func NewNotificationClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *NotificationClient {
	return &NotificationClient{
		baseURL:    trimBaseURL(baseURL),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send delivers a notification to the recipient over the given channel type.
func (c *NotificationClient) Send(ctx context.Context, recipient, message, channelType string) (*orders.NotificationResult, error) {
	payload := notificationRequest{
		Recipient: recipient,
		Message:   message,
		Type:      channelType,
	}

	var result orders.NotificationResult
	url := c.baseURL + "/notifications/send"
	if err := postJSON(ctx, c.httpClient, url, payload, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", orders.ErrNotificationFailed, err)
	}

	c.logger.Info("Notification sent",
		zap.String("recipient", recipient),
		zap.String("status", result.Status),
	)
	return &result, nil
}
