package models

// Update is one decoded inbound chat update, built once at the transport
// boundary and consumed uniformly by the router. Command is empty for plain
// text messages; for commands, Args holds the text after the command word.
type Update struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int64  `json:"message_id"`
	From      User   `json:"from"`
	Text      string `json:"text"`
	Command   string `json:"command,omitempty"`
	Args      string `json:"args,omitempty"`
}

// IsCommand reports whether the update carries a bot command.
func (u *Update) IsCommand() bool {
	return u.Command != ""
}
