package service

import (
	"context"
	"fmt"

	"studybuddy/internal/ai"
	apperrors "studybuddy/internal/errors"
	"studybuddy/internal/extract"
	"studybuddy/internal/logger"
	"studybuddy/internal/workspace"
)

const chatModule = "chat"

// ChatService runs prompts and uploads against a workspace's conversation.
type ChatService interface {
	Ask(ctx context.Context, ws *workspace.Workspace, prompt string) (string, error)
	Roadmap(ctx context.Context, ws *workspace.Workspace, topic string) (string, error)
	Upload(ctx context.Context, ws *workspace.Workspace, data []byte) (extract.Document, error)
}

type chatService struct {
	generator ai.TextGenerator
	extractor extract.TextExtractor
	log       logger.ILogger
}

// NewChatService creates a chat service.
func NewChatService(generator ai.TextGenerator, extractor extract.TextExtractor, log logger.ILogger) ChatService {
	return &chatService{generator: generator, extractor: extractor, log: log}
}

// Ask sends prompt on the workspace chat and logs the exchange on success.
func (s *chatService) Ask(ctx context.Context, ws *workspace.Workspace, prompt string) (string, error) {
	return s.send(ctx, ws, prompt, prompt)
}

// Roadmap asks for a learning roadmap; the log keeps the raw topic.
func (s *chatService) Roadmap(ctx context.Context, ws *workspace.Workspace, topic string) (string, error) {
	return s.send(ctx, ws, topic, ai.RoadmapPrompt(topic))
}

func (s *chatService) send(ctx context.Context, ws *workspace.Workspace, shown, prompt string) (string, error) {
	response, err := ws.Chat(s.generator).Send(ctx, prompt)
	if err != nil {
		s.log.Error(chatModule, "model call failed", map[string]interface{}{
			"workspace_id": ws.ID,
			"error":        err,
		})
		return "", fmt.Errorf("%w: %v", apperrors.ErrRemoteService, err)
	}
	ws.Append(shown, response)
	return response, nil
}

// Upload extracts the document text and appends it to the conversation.
func (s *chatService) Upload(ctx context.Context, ws *workspace.Workspace, data []byte) (extract.Document, error) {
	doc, err := s.extractor.Extract(ctx, data)
	if err != nil {
		s.log.Warn(chatModule, "extraction failed", map[string]interface{}{
			"workspace_id": ws.ID,
			"bytes":        len(data),
			"error":        err.Error(),
		})
		return extract.Document{}, err
	}
	ws.Append(doc.Label(), doc.Text)
	s.log.Info(chatModule, "document extracted", map[string]interface{}{
		"workspace_id": ws.ID,
		"kind":         string(doc.Kind),
		"chars":        len(doc.Text),
	})
	return doc, nil
}
