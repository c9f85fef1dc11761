// Package router classifies each inbound update and dispatches it: an open
// deletion dialog consumes the message first, then known commands, and
// anything left is captured as a new event.
package router

import (
	"context"
	"log"

	"postwriter/internal/dialog"
	"postwriter/internal/models"
	"postwriter/internal/service/assistant"
)

// Replier delivers reply actions to the originating chat. Sending returns
// the platform message id so placeholder messages can be deleted later.
type Replier interface {
	SendMessage(ctx context.Context, chatID int64, text string) (int64, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

// Generator is the opaque text-generation backend.
type Generator interface {
	GeneratePosts(ctx context.Context, events []string) (string, models.TokenUsage, error)
	Chat(ctx context.Context, query string) (string, error)
}

// Router owns message classification and the per-user dialog table.
type Router struct {
	assistant *assistant.Service
	dialogs   dialog.Store
	ai        Generator
	replier   Replier
}

func New(assistantSvc *assistant.Service, dialogs dialog.Store, generator Generator, replier Replier) *Router {
	return &Router{
		assistant: assistantSvc,
		dialogs:   dialogs,
		ai:        generator,
		replier:   replier,
	}
}

// Handle processes one inbound update end to end, including replies. Updates
// for one user must be handled in arrival order; the dispatcher guarantees
// that, so Handle itself stays sequential and unlocked.
func (r *Router) Handle(ctx context.Context, up *models.Update) {
	if up == nil || up.From.ID <= 0 {
		return
	}

	// First contact creates the user; every later call is a no-op read.
	if _, err := r.assistant.UpsertUser(ctx, up.From); err != nil {
		log.Printf("upsert user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}

	// An open dialog consumes the message before anything else, so a numeric
	// reply is never also logged as an event.
	session, open, err := r.dialogs.Get(ctx, up.From.ID)
	if err != nil {
		log.Printf("load dialog for user %d: %v", up.From.ID, err)
		r.send(ctx, up.ChatID, replyGenericFailure)
		return
	}
	if open {
		r.handleDialogReply(ctx, up, session)
		return
	}

	switch up.Command {
	case "start":
		r.handleStart(ctx, up)
	case "generate":
		r.handleGenerate(ctx, up)
	case "myevents":
		r.handleMyEvents(ctx, up)
	case "deleteevent":
		r.handleDeleteEvent(ctx, up)
	case "chat":
		r.handleChat(ctx, up)
	case "help":
		r.handleHelp(ctx, up)
	default:
		// Unknown commands fall through to event capture, same as plain text.
		r.handleNewEvent(ctx, up)
	}
}

func (r *Router) send(ctx context.Context, chatID int64, text string) {
	if _, err := r.replier.SendMessage(ctx, chatID, text); err != nil {
		log.Printf("send reply to chat %d: %v", chatID, err)
	}
}

// removeMessage resolves a "please wait" placeholder. Failures are logged
// only; the final reply still goes out.
func (r *Router) removeMessage(ctx context.Context, chatID, messageID int64) {
	if err := r.replier.DeleteMessage(ctx, chatID, messageID); err != nil {
		log.Printf("delete message %d in chat %d: %v", messageID, chatID, err)
	}
}
