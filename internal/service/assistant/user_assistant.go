package assistant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"postwriter/internal/models"
)

// UpsertUser inserts the user if no record exists for profile.ID and returns
// the stored record. An existing record is left untouched, profile fields
// included: this is an idempotent ensure-exists, not create-or-replace.
func (s *Service) UpsertUser(ctx context.Context, profile models.User) (*models.User, error) {
	if profile.ID <= 0 {
		return nil, errors.New("invalid user id")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, is_bot, username, prompt_tokens, completion_tokens, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, 0, ?)
		 ON CONFLICT(id) DO NOTHING`,
		profile.ID, profile.FirstName, profile.LastName, profile.IsBot, profile.Username, s.now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	return s.GetUser(ctx, profile.ID)
}

// GetUser fetches one user by identity. Returns sql.ErrNoRows when absent.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, is_bot, username, prompt_tokens, completion_tokens, created_at
		 FROM users WHERE id = ?`, id,
	)
	var user models.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.IsBot,
		&user.Username, &user.PromptTokens, &user.CompletionTokens, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// RecordUsage atomically increments both usage counters for the user.
// Returns sql.ErrNoRows if the user does not exist.
func (s *Service) RecordUsage(ctx context.Context, userID int64, usage models.TokenUsage) error {
	if userID <= 0 {
		return errors.New("invalid user id")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE users
		 SET prompt_tokens = prompt_tokens + ?, completion_tokens = completion_tokens + ?
		 WHERE id = ?`,
		usage.PromptTokens, usage.CompletionTokens, userID,
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
