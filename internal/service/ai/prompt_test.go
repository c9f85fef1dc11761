package ai

import (
	"strings"
	"testing"
)

func TestBuildPostsPromptKeepsEventOrder(t *testing.T) {
	prompt := buildPostsPrompt([]string{"Shipped v2", "Team lunch", "Fixed the deploy"})

	first := strings.Index(prompt, "Shipped v2")
	second := strings.Index(prompt, "Team lunch")
	third := strings.Index(prompt, "Fixed the deploy")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("events missing from prompt: %q", prompt)
	}
	if !(first < second && second < third) {
		t.Fatalf("events out of order at %d, %d, %d", first, second, third)
	}
}

func TestBuildPostsPromptNamesAllPlatforms(t *testing.T) {
	prompt := buildPostsPrompt([]string{"Shipped v2"})

	for _, platform := range []string{"LinkedIn", "Facebook", "Twitter"} {
		if !strings.Contains(prompt, platform) {
			t.Errorf("prompt missing %s: %q", platform, prompt)
		}
	}
}

func TestBuildPostsPromptForbidsTimestamps(t *testing.T) {
	prompt := buildPostsPrompt([]string{"Shipped v2"})

	if !strings.Contains(prompt, "do not mention times or dates") {
		t.Fatalf("prompt missing the no-timestamps instruction: %q", prompt)
	}
}
