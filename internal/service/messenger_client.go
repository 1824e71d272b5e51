package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Message one email or SMS handed to the messaging gateway.
type Message struct {
	Channel string `json:"channel"` // "email" | "sms"
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// messengerResponse gateway response envelope.
type messengerResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// MessengerClient HTTP client for the Zoweh messaging gateway, which
// owns actual email/SMS delivery. This service only hands messages
// over; templates and provider routing live gateway-side.
type MessengerClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// MessageSender is what reminder dispatch needs from the gateway.
type MessageSender interface {
	Send(ctx context.Context, msg Message) error
}

func NewMessengerClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *MessengerClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}

	return &MessengerClient{httpClient: client, logger: logger}
}

var _ MessageSender = (*MessengerClient)(nil)

// Send posts one message to the gateway.
func (c *MessengerClient) Send(ctx context.Context, msg Message) error {
	var result messengerResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(&result).
		Post("/v1/messages")
	if err != nil {
		return fmt.Errorf("messenger request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("messenger returned HTTP %d", resp.StatusCode())
	}
	if result.Status != 0 {
		return fmt.Errorf("messenger rejected message: status=%d msg=%s", result.Status, result.Msg)
	}

	c.logger.Debug("Message handed to gateway",
		zap.String("channel", msg.Channel),
		zap.String("to", msg.To),
	)
	return nil
}
