package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/middleware"
	"github.com/dukerupert/tantuka/internal/telemetry"
)

// ErrorResponse writes an error to the client. JSON is the default; callers
// that explicitly ask for HTML without also accepting JSON get plain text.
//
// Internal errors are logged with their full chain and answered with a
// generic message.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)
	message := domain.ErrorMessage(err)

	logError(r, err, code, status)

	if code == domain.EUNAUTHORIZED {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	if prefersHTML(r) && !acceptsJSON(r) {
		http.Error(w, message, status)
		return
	}

	writeErrorEnvelope(w, status, code, message, nil)
}

// ValidationErrorResponse writes a 400 with per-field messages. Errors that
// are not validation errors go through ErrorResponse.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	fields := domain.GetValidationFields(err)
	if fields == nil {
		ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("validation failed",
		"op", domain.ErrorOp(err),
		"fields", fields,
	)

	writeErrorEnvelope(w, http.StatusBadRequest, domain.EINVALID, "Validation failed", fields)
}

// RespondError picks ValidationErrorResponse or ErrorResponse for err.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsValidationError(err) {
		ValidationErrorResponse(w, r, err)
		return
	}
	ErrorResponse(w, r, err)
}

func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.ENOTFOUND, "", "Not found"))
}

func UnauthorizedResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.EUNAUTHORIZED, "", "Not authenticated"))
}

func ForbiddenResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.EFORBIDDEN, "", "Forbidden"))
}

// InternalErrorResponse hides err from the client and logs it.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, domain.Internal(err, "", "internal error"))
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeErrorEnvelope(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]errorBody{
		"error": {Code: code, Message: message, Fields: fields},
	})
}

func logError(r *http.Request, err error, code string, status int) {
	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"code", code,
		"status", status,
		"op", domain.ErrorOp(err),
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}

	if status >= 500 {
		logger.Error("request failed", attrs...)
		telemetry.CaptureError(r.Context(), err, sentryTags(r, code))
		return
	}
	logger.Debug("request rejected", attrs...)
}

func sentryTags(r *http.Request, code string) map[string]string {
	tags := map[string]string{
		"code":       code,
		"request_id": middleware.GetRequestID(r.Context()),
	}
	if user := middleware.GetUserFromContext(r.Context()); user != nil {
		tags["user_id"] = strconv.FormatInt(user.ID, 10)
	}
	return tags
}

// acceptsJSON reports whether the client is speaking JSON.
func acceptsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasSuffix(r.URL.Path, ".json")
}

func prefersHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
