package ai

import (
	"context"
	"errors"
	"fmt"

	"postwriter/internal/config"
	"postwriter/internal/models"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Service talks to the configured text-generation backend. The backend is
// opaque to the rest of the bot: a list of role/content turns in, generated
// text plus token usage out.
type Service struct {
	chatModel model.ToolCallingChatModel
}

// NewService builds the chat model for the configured provider. "groq" and
// "openai" both speak the OpenAI-compatible protocol and differ only in base
// URL and model name.
func NewService(ctx context.Context, provider string, provCfg config.ProviderConfig) (*Service, error) {
	if provCfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: api key is required", provider)
	}

	var chatModel model.ToolCallingChatModel
	var err error

	switch provider {
	case "openai", "groq":
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: provCfg.BaseURL,
			Model:   provCfg.Model,
			APIKey:  provCfg.APIKey,
		})
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: provCfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  provCfg.Model,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    provCfg.APIKey,
			Model:     provCfg.Model,
			BaseURL:   baseURLPtr,
			MaxTokens: 3000,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s chat model: %w", provider, err)
	}

	return &Service{chatModel: chatModel}, nil
}

// GeneratePosts turns the day's event texts, in list order, into three
// platform-tailored post drafts. Returns the generated text and the token
// usage reported by the backend.
func (s *Service) GeneratePosts(ctx context.Context, events []string) (string, models.TokenUsage, error) {
	if len(events) == 0 {
		return "", models.TokenUsage{}, errors.New("no events to generate from")
	}

	messages := []*schema.Message{
		schema.SystemMessage(postsSystemPrompt),
		schema.UserMessage(buildPostsPrompt(events)),
	}

	out, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", models.TokenUsage{}, fmt.Errorf("generate posts: %w", err)
	}

	return out.Content, usageFrom(out), nil
}

// Chat forwards a free-form question verbatim and returns the answer.
func (s *Service) Chat(ctx context.Context, query string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(chatSystemPrompt),
		schema.UserMessage(query),
	}

	out, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return out.Content, nil
}

func usageFrom(msg *schema.Message) models.TokenUsage {
	var usage models.TokenUsage
	if msg != nil && msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		usage.PromptTokens = msg.ResponseMeta.Usage.PromptTokens
		usage.CompletionTokens = msg.ResponseMeta.Usage.CompletionTokens
	}
	return usage
}
