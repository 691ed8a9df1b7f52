package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// It never says which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned when a study session id is missing.
	ErrSessionNotFound = errors.New("study session not found")
	// ErrInvalidSchedule is returned when a date or time cannot be parsed.
	ErrInvalidSchedule = errors.New("invalid schedule date or time")
	// ErrExtraction is returned when a document cannot be parsed.
	ErrExtraction = errors.New("could not extract text from document")
	// ErrUnsupportedDocument is returned for uploads that are neither PDF nor image.
	ErrUnsupportedDocument = errors.New("unsupported document type")
	// ErrRemoteService is returned when the AI provider call fails.
	ErrRemoteService = errors.New("ai service unavailable")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrWorkspaceExpired is returned when a token outlives its UI session.
	ErrWorkspaceExpired = errors.New("session expired, please log in again")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
	{ErrInvalidSchedule, http.StatusBadRequest, "INVALID_SCHEDULE"},
	{ErrExtraction, http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
	{ErrUnsupportedDocument, http.StatusUnsupportedMediaType, "UNSUPPORTED_DOCUMENT"},
	{ErrRemoteService, http.StatusBadGateway, "REMOTE_SERVICE_ERROR"},
	{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
	{ErrWorkspaceExpired, http.StatusUnauthorized, "SESSION_EXPIRED"},
}

// MapErrorToHTTP maps domain errors, wrapped or not, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
