package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/service"
)

// ResetMailer delivers a reset token to its user. Implemented by
// mail.Mailer.
type ResetMailer interface {
	SendResetEmail(ctx context.Context, user *model.User, token string) error
}

// ResetHandler handles the forgot-password and reset-password flows.
type ResetHandler struct {
	reset  *service.ResetService
	mailer ResetMailer
	render *Renderer
}

// NewResetHandler creates a new ResetHandler.
func NewResetHandler(reset *service.ResetService, mailer ResetMailer, render *Renderer) *ResetHandler {
	return &ResetHandler{reset: reset, mailer: mailer, render: render}
}

// ShowForgot handles GET /forgot_password.
func (h *ResetHandler) ShowForgot(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "forgot_password", PageData{
		Title: "Forgot Password",
		Flash: popFlash(w, r),
	})
}

// HandleForgot handles POST /forgot_password: issue a token for the
// given email and mail the reset link.
func (h *ResetHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user, token, err := h.reset.Issue(r.Context(), r.PostFormValue("email"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmail) {
			setFlash(w, "No account found with that email address.")
			http.Redirect(w, r, "/forgot_password", http.StatusFound)
			return
		}
		serverError(w, err)
		return
	}

	if err := h.mailer.SendResetEmail(r.Context(), user, token); err != nil {
		slog.Error("send reset email", "error", err)
		setFlash(w, "Could not send reset email. Please try again later.")
		http.Redirect(w, r, "/forgot_password", http.StatusFound)
		return
	}

	setFlash(w, "Password reset instructions have been sent to your email.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ShowReset handles GET /reset_password/{token}. A missing, redeemed
// or expired token gets one uniform message.
func (h *ResetHandler) ShowReset(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.reset.Validate(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			setFlash(w, "Invalid or expired password reset link.")
			http.Redirect(w, r, "/forgot_password", http.StatusFound)
			return
		}
		serverError(w, err)
		return
	}

	h.render.Render(w, http.StatusOK, "reset_password", PageData{
		Title: "Reset Password",
		Flash: popFlash(w, r),
		Token: token,
	})
}

// HandleReset handles POST /reset_password/{token}: redeem the token
// and set the new password.
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.reset.Redeem(r.Context(), token, r.PostFormValue("password")); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			setFlash(w, "Invalid or expired password reset link.")
			http.Redirect(w, r, "/forgot_password", http.StatusFound)
		case errors.Is(err, service.ErrPasswordRequired):
			setFlash(w, "Password is required")
			http.Redirect(w, r, "/reset_password/"+token, http.StatusFound)
		default:
			serverError(w, err)
		}
		return
	}

	setFlash(w, "Your password has been reset successfully.")
	http.Redirect(w, r, "/login", http.StatusFound)
}
