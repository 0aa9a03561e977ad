package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

// ChatStreamer streams assistant replies chunk by chunk.
type ChatStreamer struct {
	model  Generator
	logger *slog.Logger
}

var _ ports.ChatModel = (*ChatStreamer)(nil)

// NewChatStreamer wraps a chat model.
func NewChatStreamer(model Generator, log *slog.Logger) *ChatStreamer {
	return &ChatStreamer{model: model, logger: log}
}

// StreamChat sends the system prompt and history and forwards every chunk to
// onDelta. Models that ignore streaming have their whole answer forwarded once.
func (c *ChatStreamer) StreamChat(ctx context.Context, system string, history []domain.ChatMessage, onDelta func(string) error) error {
	messages := make([]llms.MessageContent, 0, len(history)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	for _, msg := range history {
		role, err := chatRole(msg.Role)
		if err != nil {
			return err
		}
		messages = append(messages, llms.TextParts(role, msg.Content))
	}

	streamed := false
	var deltaErr error
	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			streamed = true
			deltaErr = onDelta(string(chunk))
			return deltaErr
		}),
	)
	if deltaErr != nil {
		return deltaErr
	}
	if err != nil {
		return fmt.Errorf("%w: chat: %v", domain.ErrUpstreamUnavailable, err)
	}

	if !streamed {
		if content, ok := firstChoice(resp); ok && content != "" {
			return onDelta(content)
		}
	}

	if c.logger != nil {
		c.logger.Debug("chat answered", "turns", len(history), "streamed", streamed)
	}
	return nil
}

func chatRole(role domain.ChatRole) (llms.ChatMessageType, error) {
	switch role {
	case domain.ChatRoleUser:
		return llms.ChatMessageTypeHuman, nil
	case domain.ChatRoleAssistant:
		return llms.ChatMessageTypeAI, nil
	default:
		return "", fmt.Errorf("%w: role %q", domain.ErrInvalidChatMessage, role)
	}
}
