package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"postwriter/internal/models"
)

// WebhookUpdate is the raw update structure Telegram posts to the webhook.
type WebhookUpdate struct {
	UpdateID int64       `json:"update_id"`
	Message  *WebhookMsg `json:"message,omitempty"`
}

type WebhookMsg struct {
	MessageID int64        `json:"message_id"`
	From      *WebhookUser `json:"from,omitempty"`
	Chat      WebhookChat  `json:"chat"`
	Text      string       `json:"text,omitempty"`
	Date      int64        `json:"date"`
}

type WebhookUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	IsBot     bool   `json:"is_bot"`
	Username  string `json:"username,omitempty"`
}

type WebhookChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// DecodeUpdate reads one webhook payload and converts it to the boundary
// update shape. Returns ok=false for updates the bot does not consume
// (no message, no sender, or no text).
func DecodeUpdate(body io.Reader) (*models.Update, bool, error) {
	var raw WebhookUpdate
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, false, fmt.Errorf("decode webhook update: %w", err)
	}

	msg := raw.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return nil, false, nil
	}

	up := &models.Update{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		From: models.User{
			ID:        msg.From.ID,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			IsBot:     msg.From.IsBot,
			Username:  msg.From.Username,
		},
		Text: msg.Text,
	}
	up.Command, up.Args = splitCommand(msg.Text)
	return up, true, nil
}

// splitCommand extracts a leading bot command from the text. "/generate",
// "/chat@PostWriterBot what is Go" and the like become ("generate", args);
// anything else is plain text with an empty command.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	word, args, _ := strings.Cut(text[1:], " ")
	if word == "" {
		return "", ""
	}
	// Commands in groups arrive as /command@BotName.
	word, _, _ = strings.Cut(word, "@")
	return strings.ToLower(word), strings.TrimSpace(args)
}
