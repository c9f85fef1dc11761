package router

import (
	"fmt"
	"strings"

	"postwriter/internal/models"
)

const (
	replyGenericFailure = "Oops! Something went wrong. Please try again later."

	replyEventSaved = "Got it! 👍 Keep sharing your thoughts with me. When you're ready, just type /generate to create your posts."

	replyGenerateWaiting   = "Please hold on while I prepare your posts. This won't take long. 😊"
	replyNothingToGenerate = "Looks like there are no events logged for today. 🚀 Start by logging your first event. 😊"

	replyNoEventsToday = "No events logged for today. 😊"
	replyEventList     = "Here are your events for today:\n\n"

	replyNothingToDelete     = "No events logged for today, so there is nothing to delete. 😊"
	replyDeletePrompt        = "Here are your events for today:\n\n"
	replyDeletePromptFooter  = "\nReply with the number of the event you want to delete, or 0 to cancel."
	replyDeleteCancelled     = "Okay, nothing was deleted. 👍"
	replyDeleteInvalid       = "That isn't a valid number from the list, so I've left everything as it was. Send /deleteevent to try again."

	replyChatWaiting = "Let me think about that... 🤔 Please hold on."

	replyHelp = "Here's what I can do:\n\n" +
		"Send me any message to log it as one of today's events.\n" +
		"/generate — turn today's events into LinkedIn, Facebook, and Twitter posts\n" +
		"/myevents — list what you've logged so far today\n" +
		"/deleteevent — remove one of today's events\n" +
		"/chat <question> — ask me anything\n" +
		"/help — show this message"
)

func greeting(firstName string) string {
	return fmt.Sprintf("Hello %s! 👋 I'm your social media content assistant bot. Log your daily events, and I'll help you create engaging posts tailored for LinkedIn, Facebook, and Twitter. 🎯 Start by logging your first event! 😊", firstName)
}

func chatUsageHint(firstName string) string {
	return fmt.Sprintf("Hi %s, please provide a question or topic after the /chat command. For example: /chat What is the best way to learn programming?", firstName)
}

func deleteConfirmation(text string) string {
	return fmt.Sprintf("Deleted this event: ✅\n\n%s", text)
}

// numberedList renders events in list order with 1-based numbering — the
// same numbering a deletion reply indexes into.
func numberedList(events []models.Event) string {
	var b strings.Builder
	for i, ev := range events {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ev.Text)
	}
	return b.String()
}
