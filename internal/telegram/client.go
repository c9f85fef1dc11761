// Package telegram is a minimal Bot API client covering what the bot needs:
// sending and deleting messages, the typing indicator, and webhook setup.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func New(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewWithBaseURL points the client at a different API origin. Tests only.
func NewWithBaseURL(token, baseURL string) *Client {
	c := New(token)
	c.baseURL = baseURL
	return c
}

// do sends a Bot API request.
// method: e.g. "sendMessage", "deleteMessage"
// payload: JSON-serializable params (or nil)
// result: pointer to struct to decode into (or nil to ignore)
func (c *Client) do(ctx context.Context, method string, payload any, result any) error {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	var req *http.Request
	var err error
	if payload == nil {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build telegram request: %w", err)
		}
	} else {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal telegram request: %w", err)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build telegram request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read telegram response: %w", err)
	}

	var envelope struct {
		OK          bool            `json:"ok"`
		Result      json.RawMessage `json:"result"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}

	if !envelope.OK {
		if envelope.Description == "" {
			envelope.Description = "unknown error"
		}
		return fmt.Errorf("telegram %s API error: %s", method, envelope.Description)
	}

	if result != nil && envelope.Result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("decode telegram result for %s: %w", method, err)
		}
	}

	return nil
}

// SendMessage sends plain text to the chat and returns the sent message id,
// which callers keep when the message is a placeholder they intend to delete.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	var sent struct {
		MessageID int64 `json:"message_id"`
	}
	err := c.do(ctx, "sendMessage", map[string]any{
		"chat_id": chatID,
		"text":    text,
	}, &sent)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// DeleteMessage removes a previously sent message from the chat.
func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return c.do(ctx, "deleteMessage", map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}, nil)
}

// SendTyping sends a "typing" chat action. Telegram shows it for ~5s.
func (c *Client) SendTyping(ctx context.Context, chatID int64) error {
	return c.do(ctx, "sendChatAction", map[string]any{
		"chat_id": chatID,
		"action":  "typing",
	}, nil)
}

// SetWebhook registers the URL Telegram should deliver updates to.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.do(ctx, "setWebhook", map[string]any{
		"url":             url,
		"allowed_updates": []string{"message"},
	}, nil)
}
