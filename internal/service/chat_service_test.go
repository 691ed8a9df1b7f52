package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "studybuddy/internal/errors"
	"studybuddy/internal/extract"
	"studybuddy/internal/logger"
	"studybuddy/internal/workspace"
)

func TestChatService_AskReusesChatAndLogs(t *testing.T) {
	chat := &fakeChat{answer: func(p string) (string, error) { return "re: " + p, nil }}
	gen := &fakeGenerator{chat: chat}
	svc := NewChatService(gen, fakeExtractor{}, logger.NewNop())
	ws := workspace.New("ws", 1)

	out, err := svc.Ask(context.Background(), ws, "what is a monad")
	require.NoError(t, err)
	assert.Equal(t, "re: what is a monad", out)

	_, err = svc.Ask(context.Background(), ws, "and a functor")
	require.NoError(t, err)

	assert.Equal(t, 1, gen.started)
	log := ws.Conversation()
	require.Len(t, log, 2)
	assert.Equal(t, "what is a monad", log[0].Prompt)
	assert.Equal(t, "re: and a functor", log[1].Response)
}

func TestChatService_RoadmapWrapsTopic(t *testing.T) {
	chat := &fakeChat{answer: func(string) (string, error) { return "1. basics", nil }}
	svc := NewChatService(&fakeGenerator{chat: chat}, fakeExtractor{}, logger.NewNop())
	ws := workspace.New("ws", 1)

	_, err := svc.Roadmap(context.Background(), ws, "Kubernetes")
	require.NoError(t, err)

	assert.Equal(t, []string{"Give me a learning roadmap on Kubernetes"}, chat.prompts)
	assert.Equal(t, "Kubernetes", ws.Conversation()[0].Prompt)
}

func TestChatService_FailedCallDoesNotTouchLog(t *testing.T) {
	calls := 0
	chat := &fakeChat{answer: func(string) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("503 overloaded")
		}
		return "fine", nil
	}}
	svc := NewChatService(&fakeGenerator{chat: chat}, fakeExtractor{}, logger.NewNop())
	ws := workspace.New("ws", 1)

	_, err := svc.Ask(context.Background(), ws, "one")
	require.NoError(t, err)

	_, err = svc.Ask(context.Background(), ws, "two")
	assert.ErrorIs(t, err, apperrors.ErrRemoteService)

	log := ws.Conversation()
	require.Len(t, log, 1)
	assert.Equal(t, "one", log[0].Prompt)
}

func TestChatService_Upload(t *testing.T) {
	ws := workspace.New("ws", 1)

	pdf := NewChatService(&fakeGenerator{}, fakeExtractor{doc: extract.Document{Kind: extract.KindPDF, Text: "AB"}}, logger.NewNop())
	doc, err := pdf.Upload(context.Background(), ws, []byte("%PDF-"))
	require.NoError(t, err)
	assert.Equal(t, "AB", doc.Text)

	img := NewChatService(&fakeGenerator{}, fakeExtractor{doc: extract.Document{Kind: extract.KindImage, Text: "ocr"}}, logger.NewNop())
	_, err = img.Upload(context.Background(), ws, []byte{0x89})
	require.NoError(t, err)

	broken := NewChatService(&fakeGenerator{}, fakeExtractor{err: apperrors.ErrExtraction}, logger.NewNop())
	_, err = broken.Upload(context.Background(), ws, []byte("%PDF-"))
	assert.ErrorIs(t, err, apperrors.ErrExtraction)

	log := ws.Conversation()
	require.Len(t, log, 2)
	assert.Equal(t, "Uploaded PDF", log[0].Prompt)
	assert.Equal(t, "AB", log[0].Response)
	assert.Equal(t, "Uploaded Image", log[1].Prompt)
}
