package ai

import "strings"

const postsSystemPrompt = `Act as a senior copywriter with a focus on crafting engaging and impactful social media content. You will create posts for LinkedIn, Facebook, and Twitter using the provided thoughts or events throughout the day. Tailor your writing to the specific tone and audience of each platform.`

const chatSystemPrompt = `You are a friendly, knowledgeable assistant inside a social media content bot. Answer the user's question clearly and concisely.`

// buildPostsPrompt assembles the aggregation request. The events appear in
// list order; the backend is told to treat that order as sequence only and
// never to surface timestamps in the drafts.
func buildPostsPrompt(events []string) string {
	var b strings.Builder
	b.WriteString("Write three distinct, engaging social media posts—one for LinkedIn, one for Facebook, and one for Twitter. ")
	b.WriteString("The LinkedIn post should use a professional tone suited to an industry audience, the Facebook post a casual tone for a broad audience, and the Twitter post should be concise and witty. ")
	b.WriteString("Focus on making each post impactful, encouraging interaction, and driving interest in the events listed below.\n\n")
	b.WriteString("The events are listed in the order they happened. Use that ordering only to understand the sequence; do not mention times or dates in the posts. ")
	b.WriteString("Keep the language simple and clear, while emphasizing the most important points from the events:\n\n")
	b.WriteString(strings.Join(events, ", "))
	return b.String()
}
