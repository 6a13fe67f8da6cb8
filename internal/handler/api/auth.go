package api

import (
	"errors"
	"mime"
	"net/http"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/handler"
	"github.com/dukerupert/tantuka/internal/middleware"
	"github.com/dukerupert/tantuka/internal/telemetry"
)

// AuthHandler handles registration and token login.
type AuthHandler struct {
	users domain.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users domain.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// loginRequest accepts the OAuth2 password form field names. The username
// field carries the email address.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.RegisterInput
	if err := handler.DecodeAndValidate(r, "user.register", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.Signups.Inc()
	}
	middleware.GetLogger(r.Context()).Info("user registered", "user_id", user.ID)

	handler.WriteMessage(w, r, http.StatusCreated, "User registered successfully")
}

// Login handles POST /api/v1/auth/login. The body may be JSON or an
// application/x-www-form-urlencoded form.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if telemetry.Business != nil {
			reason := "credentials"
			if errors.Is(err, domain.ErrInactiveUser) {
				reason = "inactive"
			}
			telemetry.Business.LoginFailed.WithLabelValues(reason).Inc()
		}
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.Logins.Inc()
	}

	handler.WriteJSON(w, r, http.StatusOK, token)
}

func decodeLogin(r *http.Request) (loginRequest, error) {
	const op = "auth.login"

	var req loginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return req, domain.Invalid(op, "Invalid form data")
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	default:
		if err := handler.DecodeJSON(r, &req); err != nil {
			return req, err
		}
	}

	return req, handler.Validate(op, &req)
}
