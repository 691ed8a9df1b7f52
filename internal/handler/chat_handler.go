package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"studybuddy/internal/errors"
	"studybuddy/internal/service"
)

const uploadField = "file"

var uploadExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ChatHandler serves the chat screen: prompts, roadmaps and document uploads.
type ChatHandler struct {
	chat  service.ChatService
	views service.ViewService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat service.ChatService, views service.ViewService) *ChatHandler {
	return &ChatHandler{chat: chat, views: views}
}

// AskRequest carries a free-form prompt.
type AskRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// RoadmapRequest carries a topic to build a learning roadmap for.
type RoadmapRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// ChatResponse is the model answer plus the refreshed chat screen.
type ChatResponse struct {
	Response string            `json:"response"`
	View     *service.ChatView `json:"view"`
}

// UploadResponse is the extracted text plus the refreshed chat screen.
type UploadResponse struct {
	Kind      string            `json:"kind"`
	MediaType string            `json:"media_type"`
	Text      string            `json:"text"`
	View      *service.ChatView `json:"view"`
}

// GetChat godoc
// @Summary Show the conversation and scheduled sessions
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ChatView
// @Failure 401 {object} errors.ErrorResponse
// @Router /chat [get]
func (h *ChatHandler) GetChat(c echo.Context) error {
	view, err := h.views.Chat(c.Request().Context(), workspaceFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Ask godoc
// @Summary Ask the study assistant
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AskRequest true "Prompt"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /chat/ask [post]
func (h *ChatHandler) Ask(c echo.Context) error {
	var req AskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	response, err := h.chat.Ask(c.Request().Context(), workspaceFrom(c), req.Prompt)
	if err != nil {
		return fail(err)
	}
	return h.respond(c, response)
}

// Roadmap godoc
// @Summary Generate a learning roadmap for a topic
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RoadmapRequest true "Topic"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /chat/roadmap [post]
func (h *ChatHandler) Roadmap(c echo.Context) error {
	var req RoadmapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	response, err := h.chat.Roadmap(c.Request().Context(), workspaceFrom(c), req.Topic)
	if err != nil {
		return fail(err)
	}
	return h.respond(c, response)
}

// UploadDocument godoc
// @Summary Extract text from a PDF or image
// @Tags chat
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF, PNG or JPEG document"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /chat/documents [post]
func (h *ChatHandler) UploadDocument(c echo.Context) error {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return badRequest("missing file", "INVALID_REQUEST")
	}
	if !uploadExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return fail(errors.ErrUnsupportedDocument)
	}

	file, err := header.Open()
	if err != nil {
		return badRequest("unreadable file", "INVALID_REQUEST")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest("unreadable file", "INVALID_REQUEST")
	}

	ctx := c.Request().Context()
	ws := workspaceFrom(c)
	doc, err := h.chat.Upload(ctx, ws, data)
	if err != nil {
		return fail(err)
	}

	view, err := h.views.Chat(ctx, ws)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UploadResponse{
		Kind:      string(doc.Kind),
		MediaType: doc.MediaType,
		Text:      doc.Text,
		View:      view,
	})
}

func (h *ChatHandler) respond(c echo.Context, response string) error {
	view, err := h.views.Chat(c.Request().Context(), workspaceFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ChatResponse{Response: response, View: view})
}
