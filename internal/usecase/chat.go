package usecase

import (
	"context"
	"fmt"
	"strings"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

const defaultChatPrompt = "You are a helpful assistant discussing tech news."

// ChatRequest is one chat turn: the full history plus optional article scope.
type ChatRequest struct {
	Messages       []domain.ChatMessage   `json:"messages"`
	ArticleContext *domain.ArticleContext `json:"articleContext,omitempty"`
}

// Validate rejects empty histories, unknown roles and blank messages.
func (r ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("%w: no messages", domain.ErrInvalidChatMessage)
	}
	for i, msg := range r.Messages {
		switch msg.Role {
		case domain.ChatRoleUser, domain.ChatRoleAssistant:
		default:
			return fmt.Errorf("%w: message %d has role %q", domain.ErrInvalidChatMessage, i, msg.Role)
		}
		if strings.TrimSpace(msg.Content) == "" {
			return fmt.Errorf("%w: message %d is empty", domain.ErrInvalidChatMessage, i)
		}
	}
	return nil
}

// Chat streams assistant answers about the news.
type Chat struct {
	model ports.ChatModel
}

// NewChat wires the streaming chat model.
func NewChat(model ports.ChatModel) *Chat {
	return &Chat{model: model}
}

// Stream validates the request and forwards answer chunks to onDelta.
func (c *Chat) Stream(ctx context.Context, req ChatRequest, onDelta func(string) error) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.model.StreamChat(ctx, SystemPrompt(req.ArticleContext), req.Messages, onDelta)
}

// SystemPrompt scopes the assistant to an article when one is given.
func SystemPrompt(article *domain.ArticleContext) string {
	if article == nil {
		return defaultChatPrompt
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant discussing this tech news article:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	fmt.Fprintf(&b, "Summary: %s\n", article.Summary)
	fmt.Fprintf(&b, "URL: %s\n\n", article.URL)
	b.WriteString("Answer questions about this article. Be concise and insightful. ")
	b.WriteString("If you don't know something specific about the article beyond what's provided, say so honestly.")
	return b.String()
}
