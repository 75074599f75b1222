package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
	"kitchen-guide/internal/service"
)

// authCookieName is the cookie that carries the signed token for
// browser-driven sessions.
const authCookieName = "auth_token"

// AuthHandler handles login, registration, and logout.
type AuthHandler struct {
	service     service.AuthService
	tokenExpiry time.Duration
	logger      zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, tokenExpiry time.Duration, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:     service,
		tokenExpiry: tokenExpiry,
		logger:      logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles GET /login (form) and POST /login (credential check).
// A successful login sets the auth cookie and redirects home.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeHTML(w, http.StatusOK, loginFormHTML)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			writeDomainError(w, model.NewValidationError("Invalid form data"), h.logger)
			return
		}

		form := &model.LoginForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}

		token, _, err := h.service.Login(r.Context(), form)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     authCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.tokenExpiry.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// Register handles GET /register (form) and POST /register (account
// creation). A successful registration redirects to the login page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeHTML(w, http.StatusOK, registerFormHTML)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			writeDomainError(w, model.NewValidationError("Invalid form data"), h.logger)
			return
		}

		form := &model.RegisterForm{
			Username:        r.FormValue("username"),
			Email:           r.FormValue("email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}

		if _, err := h.service.Register(r.Context(), form); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// Logout handles GET /logout, clearing the auth cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
