package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"studybuddy/internal/service"
)

// SessionHandler handles study session scheduling.
type SessionHandler struct {
	schedule service.ScheduleService
	views    service.ViewService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(schedule service.ScheduleService, views service.ViewService) *SessionHandler {
	return &SessionHandler{schedule: schedule, views: views}
}

// ScheduleRequest represents a new study session. Date is YYYY-MM-DD and
// time is HH:MM or HH:MM:SS in the server's timezone.
type ScheduleRequest struct {
	Topic string `json:"topic" validate:"required"`
	Date  string `json:"date" validate:"required"`
	Time  string `json:"time" validate:"required"`
}

// ScheduleResponse is returned after scheduling.
type ScheduleResponse struct {
	Message string               `json:"message"`
	Session service.SessionView  `json:"session"`
	Profile *service.ProfileView `json:"profile"`
}

// Schedule godoc
// @Summary Schedule a study session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduleRequest true "Session data"
// @Success 201 {object} ScheduleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) Schedule(c echo.Context) error {
	var req ScheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID := claimsFrom(c).UserID
	session, err := h.schedule.Schedule(ctx, userID, req.Topic, req.Date, req.Time)
	if err != nil {
		return fail(err)
	}

	view, err := h.views.Profile(ctx, userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, ScheduleResponse{
		Message: "Study session scheduled for " + session.ScheduledTime.Format("2006-01-02 15:04"),
		Session: service.NewSessionView(*session),
		Profile: view,
	})
}

// List godoc
// @Summary List the current user's study sessions
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.SessionView
// @Failure 401 {object} errors.ErrorResponse
// @Router /sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	sessions, err := h.schedule.List(c.Request().Context(), claimsFrom(c).UserID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, service.NewSessionViews(sessions))
}

// Complete godoc
// @Summary Mark a study session as completed
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} service.ProfileView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) Complete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest("invalid session id", "INVALID_ID")
	}

	ctx := c.Request().Context()
	userID := claimsFrom(c).UserID
	if err := h.schedule.Complete(ctx, userID, uint(id)); err != nil {
		return fail(err)
	}

	view, err := h.views.Profile(ctx, userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}
