// Package ai wraps the hosted generative model behind a small capability
// interface so callers can swap in a fake without network access.
package ai

import (
	"context"
	"fmt"
)

// RoadmapTemplate wraps a raw topic into the roadmap prompt.
const RoadmapTemplate = "Give me a learning roadmap on %s"

// TextGenerator starts multi-turn chats with a model.
type TextGenerator interface {
	StartChat() Conversation
}

// Conversation is a chat handle that remembers prior turns.
type Conversation interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// RoadmapPrompt returns the prompt sent for a roadmap request.
func RoadmapPrompt(topic string) string {
	return fmt.Sprintf(RoadmapTemplate, topic)
}
