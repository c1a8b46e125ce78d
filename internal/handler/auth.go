package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/inkwell/inkwell-go/internal/crypto"
	"github.com/inkwell/inkwell-go/internal/middleware"
	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/service"
)

const sessionLifetime = 24 * time.Hour

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	auth          *service.AuthService
	render        *Renderer
	sessionSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, render *Renderer, sessionSecret string) *AuthHandler {
	return &AuthHandler{auth: auth, render: render, sessionSecret: sessionSecret}
}

// ShowSignup handles GET /signup.
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "signup", PageData{
		Title: "Sign Up",
		Flash: popFlash(w, r),
	})
}

// HandleSignup handles POST /signup.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := model.SignupRequest{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if _, err := h.auth.Register(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			setFlash(w, "Username already exists")
		case errors.Is(err, service.ErrEmailTaken):
			setFlash(w, "Email already exists")
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrPasswordRequired):
			setFlash(w, "All fields are required")
		default:
			serverError(w, err)
			return
		}
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	setFlash(w, "Account created successfully!")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "login", PageData{
		Title: "Log In",
		Flash: popFlash(w, r),
	})
}

// HandleLogin handles POST /login. Unknown username and wrong password
// produce the same flash message.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := model.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			setFlash(w, "Invalid username or password")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		serverError(w, err)
		return
	}

	token, err := crypto.NewSessionToken(user.ID, h.sessionSecret, sessionLifetime)
	if err != nil {
		serverError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleLogout handles GET /logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}
