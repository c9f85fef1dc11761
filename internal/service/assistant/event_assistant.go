package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postwriter/internal/models"
)

// LogEvent appends a new event for the owner, timestamped now.
func (s *Service) LogEvent(ctx context.Context, userID int64, text string) (*models.Event, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user id")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("event text cannot be empty")
	}

	createdAt := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (user_id, text, created_at) VALUES (?, ?, ?)`,
		userID, text, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("log event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("event id: %w", err)
	}
	return &models.Event{ID: id, UserID: userID, Text: text, CreatedAt: createdAt}, nil
}

// EventsInWindow returns the owner's events with created_at inside the window,
// in insertion order. The order is what numbers the user-facing list, so it
// must be stable across repeated calls when nothing was written in between.
func (s *Service) EventsInWindow(ctx context.Context, userID int64, window DayWindow) ([]models.Event, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user id")
	}

	// Bounds are normalized to UTC so the driver-encoded timestamps compare
	// chronologically against the stored UTC values.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, text, created_at FROM events
		 WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		 ORDER BY id`,
		userID, window.Start.UTC(), window.End.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Text, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes one event by id. Deleting an id that no longer exists
// is not an error; ids are only ever taken from a just-fetched snapshot.
func (s *Service) DeleteEvent(ctx context.Context, eventID int64) error {
	if eventID <= 0 {
		return errors.New("invalid event id")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
