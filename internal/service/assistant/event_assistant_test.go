package assistant

import (
	"context"
	"testing"
	"time"

	"postwriter/internal/models"
)

func seedUser(t *testing.T, svc *Service, id int64) {
	t.Helper()
	if _, err := svc.UpsertUser(context.Background(), models.User{ID: id, FirstName: "Tester"}); err != nil {
		t.Fatalf("seed user %d: %v", id, err)
	}
}

func TestLogEventPreservesInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()
	seedUser(t, svc, 1)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	svc.SetClock(func() time.Time { return base })

	texts := []string{"Shipped v2 of the reporting dashboard", "Team lunch", "Fixed the flaky deploy"}
	for _, text := range texts {
		if _, err := svc.LogEvent(ctx, 1, text); err != nil {
			t.Fatalf("log event %q: %v", text, err)
		}
	}

	events, err := svc.EventsInWindow(ctx, 1, DayWindowSoFar(base))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != len(texts) {
		t.Fatalf("expected %d events, got %d", len(texts), len(events))
	}
	for i, want := range texts {
		if events[i].Text != want {
			t.Fatalf("event %d: got %q, want %q", i, events[i].Text, want)
		}
	}
}

func TestLogEventRejectsEmptyText(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	seedUser(t, svc, 1)

	if _, err := svc.LogEvent(context.Background(), 1, "   "); err == nil {
		t.Fatal("expected error for blank event text")
	}
}

func TestEventsInWindowExcludesOtherDays(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()
	seedUser(t, svc, 1)

	today := time.Date(2026, 8, 28, 14, 30, 0, 0, time.Local)

	svc.SetClock(func() time.Time { return today.AddDate(0, 0, -1) })
	if _, err := svc.LogEvent(ctx, 1, "yesterday's standup"); err != nil {
		t.Fatalf("log yesterday: %v", err)
	}

	svc.SetClock(func() time.Time { return today })
	if _, err := svc.LogEvent(ctx, 1, "today's demo"); err != nil {
		t.Fatalf("log today: %v", err)
	}

	for name, window := range map[string]DayWindow{
		"so-far": DayWindowSoFar(today),
		"full":   DayWindowFull(today),
	} {
		events, err := svc.EventsInWindow(ctx, 1, window)
		if err != nil {
			t.Fatalf("%s window: %v", name, err)
		}
		if len(events) != 1 || events[0].Text != "today's demo" {
			t.Fatalf("%s window: expected only today's event, got %+v", name, events)
		}
	}
}

func TestEventsInWindowScopedToUser(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()
	seedUser(t, svc, 1)
	seedUser(t, svc, 2)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	svc.SetClock(func() time.Time { return base })

	if _, err := svc.LogEvent(ctx, 1, "mine"); err != nil {
		t.Fatalf("log event: %v", err)
	}
	if _, err := svc.LogEvent(ctx, 2, "theirs"); err != nil {
		t.Fatalf("log event: %v", err)
	}

	events, err := svc.EventsInWindow(ctx, 1, DayWindowSoFar(base))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Text != "mine" {
		t.Fatalf("expected only user 1's event, got %+v", events)
	}
}

func TestDeleteEvent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()
	seedUser(t, svc, 1)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	svc.SetClock(func() time.Time { return base })

	first, err := svc.LogEvent(ctx, 1, "Shipped v2")
	if err != nil {
		t.Fatalf("log event: %v", err)
	}
	if _, err := svc.LogEvent(ctx, 1, "Team lunch"); err != nil {
		t.Fatalf("log event: %v", err)
	}

	if err := svc.DeleteEvent(ctx, first.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	events, err := svc.EventsInWindow(ctx, 1, DayWindowFull(base))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Text != "Team lunch" {
		t.Fatalf("expected only the second event to remain, got %+v", events)
	}

	// Deleting an id that is already gone is not an error.
	if err := svc.DeleteEvent(ctx, first.ID); err != nil {
		t.Fatalf("re-delete: %v", err)
	}
}
