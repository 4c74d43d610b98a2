package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// Client is the outbound adapter for the provider's message-send API
// (Graph-style: POST {base}/{phoneNumberID}/messages with a Bearer token).
// No retries; the caller's context or the client timeout governs.
type Client struct {
	baseURL       string
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
	logger        *slog.Logger
}

var _ ports.MessageSender = (*Client)(nil)

// NewClient creates a new outbound provider client.
func NewClient(baseURL, accessToken, phoneNumberID string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		logger:        logger.With("component", "whatsapp_client"),
	}
}

// sendTextRequest is the provider wire format for a text send.
type sendTextRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

// SendText delivers one text message to the given external address.
func (c *Client) SendText(ctx context.Context, toAddress, text string) error {
	payload := sendTextRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               toAddress,
		Type:             "text",
		Text:             textBody{Body: text},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("provider send rejected",
			"status", resp.Status,
			"to", toAddress,
		)
		return fmt.Errorf("whatsapp api error: %s body=%s", resp.Status, body)
	}

	return nil
}
