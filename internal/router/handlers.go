package router

import (
	"context"
	"log"
	"strconv"
	"strings"

	"postwriter/internal/dialog"
	"postwriter/internal/models"
	"postwriter/internal/service/assistant"
)

func (r *Router) handleStart(ctx context.Context, up *models.Update) {
	r.send(ctx, up.ChatID, greeting(up.From.FirstName))
}

func (r *Router) handleHelp(ctx context.Context, up *models.Update) {
	r.send(ctx, up.ChatID, replyHelp)
}

func (r *Router) handleNewEvent(ctx context.Context, up *models.Update) {
	if _, err := r.assistant.LogEvent(ctx, up.From.ID, up.Text); err != nil {
		log.Printf("log event for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	r.send(ctx, up.ChatID, replyEventSaved)
}

func (r *Router) handleMyEvents(ctx context.Context, up *models.Update) {
	window := assistant.DayWindowSoFar(r.assistant.Now())
	events, err := r.assistant.EventsInWindow(ctx, up.From.ID, window)
	if err != nil {
		log.Printf("list events for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	if len(events) == 0 {
		r.send(ctx, up.ChatID, replyNoEventsToday)
		return
	}
	r.send(ctx, up.ChatID, replyEventList+numberedList(events))
}

func (r *Router) handleChat(ctx context.Context, up *models.Update) {
	query := strings.TrimSpace(up.Args)
	if query == "" {
		r.send(ctx, up.ChatID, chatUsageHint(up.From.FirstName))
		return
	}

	waitingID, err := r.replier.SendMessage(ctx, up.ChatID, replyChatWaiting)
	if err != nil {
		log.Printf("send chat placeholder to chat %d: %v", up.ChatID, err)
		return
	}

	answer, err := r.ai.Chat(ctx, query)
	r.removeMessage(ctx, up.ChatID, waitingID)
	if err != nil {
		log.Printf("chat for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	r.send(ctx, up.ChatID, answer)
}

func (r *Router) handleGenerate(ctx context.Context, up *models.Update) {
	waitingID, err := r.replier.SendMessage(ctx, up.ChatID, replyGenerateWaiting)
	if err != nil {
		log.Printf("send generate placeholder to chat %d: %v", up.ChatID, err)
		return
	}

	result, err := r.generatePosts(ctx, up.From.ID)
	r.removeMessage(ctx, up.ChatID, waitingID)
	if err != nil {
		log.Printf("generate posts for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	if result.empty {
		r.send(ctx, up.ChatID, replyNothingToGenerate)
		return
	}
	r.send(ctx, up.ChatID, result.text)
}

// generation is the explicit outcome of one aggregation run: an empty day,
// generated text, or (via the error return) a failure.
type generation struct {
	empty bool
	text  string
}

// generatePosts fetches today's events (end-of-day window), dispatches one
// aggregation request, and records the reported token usage. An empty day
// makes no backend call and records nothing.
func (r *Router) generatePosts(ctx context.Context, userID int64) (generation, error) {
	window := assistant.DayWindowFull(r.assistant.Now())
	events, err := r.assistant.EventsInWindow(ctx, userID, window)
	if err != nil {
		return generation{}, err
	}
	if len(events) == 0 {
		return generation{empty: true}, nil
	}

	texts := make([]string, 0, len(events))
	for _, ev := range events {
		texts = append(texts, ev.Text)
	}

	text, usage, err := r.ai.GeneratePosts(ctx, texts)
	if err != nil {
		return generation{}, err
	}
	if err := r.assistant.RecordUsage(ctx, userID, usage); err != nil {
		// The posts were generated; losing one usage sample is not worth
		// failing the reply over.
		log.Printf("record usage for user %d: %v", userID, err)
	}
	return generation{text: text}, nil
}

func (r *Router) handleDeleteEvent(ctx context.Context, up *models.Update) {
	window := assistant.DayWindowFull(r.assistant.Now())
	events, err := r.assistant.EventsInWindow(ctx, up.From.ID, window)
	if err != nil {
		log.Printf("list events for deletion for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	if len(events) == 0 {
		r.send(ctx, up.ChatID, replyNothingToDelete)
		return
	}

	session := &dialog.Session{
		UserID:   up.From.ID,
		Events:   events,
		OpenedAt: r.assistant.Now(),
	}
	if err := r.dialogs.Open(ctx, session); err != nil {
		log.Printf("open dialog for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	r.send(ctx, up.ChatID, replyDeletePrompt+numberedList(events)+replyDeletePromptFooter)
}

// handleDialogReply consumes the next message from a user with an open
// deletion dialog. Every outcome closes the dialog: "0" cancels, a valid
// 1-based index deletes that snapshot entry, anything else is reported as
// invalid and ends the dialog.
func (r *Router) handleDialogReply(ctx context.Context, up *models.Update, session *dialog.Session) {
	if err := r.dialogs.Close(ctx, up.From.ID); err != nil {
		log.Printf("close dialog for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}

	reply := strings.TrimSpace(up.Text)
	if reply == "0" {
		r.send(ctx, up.ChatID, replyDeleteCancelled)
		return
	}

	index, err := strconv.Atoi(reply)
	if err != nil || index < 1 || index > len(session.Events) {
		r.send(ctx, up.ChatID, replyDeleteInvalid)
		return
	}

	event := session.Events[index-1]
	if err := r.assistant.DeleteEvent(ctx, event.ID); err != nil {
		log.Printf("delete event %d for user %d: %v", event.ID, up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	r.send(ctx, up.ChatID, deleteConfirmation(event.Text))
}
