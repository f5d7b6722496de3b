package handlers

import (
	"errors"
	"net/http"
	"strings"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/views/pages"
)

const signInFailedMessage = "We were unable to sign you in. Please try again."

// Login renders the sign-in view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "identity already signed in, redirecting home")
			redirectToHome(w, r)
			return
		}
		renderLogin(w, r, "", "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if email == "" || password == "" {
			applog.Debug(r.Context(), "login form missing credentials", "emailPresent", email != "", "passwordPresent", password != "")
			renderLogin(w, r, "Email and password are required.", email)
			return
		}

		ws, err := currentWorkspace(r)
		if err != nil {
			applog.Error(r.Context(), "authentication dependencies unavailable", "error", err)
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}

		if err := ws.Content.SignIn(r.Context(), email, password); err != nil {
			if errors.Is(err, content.ErrTransport) {
				applog.Error(r.Context(), "sign-in round trip failed", "error", err)
			} else {
				applog.Error(r.Context(), "sign-in failed", "error", err)
			}
			renderLogin(w, r, signInFailedMessage, email)
			return
		}
		if err := sessionManager.RenewToken(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to renew session token", "error", err)
		}

		applog.Debug(r.Context(), "sign-in succeeded", "origin", ws.ID)
		redirectToHome(w, r)
	default:
		applog.Debug(r.Context(), "method not allowed for login", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, message, email string) {
	renderPage(w, r, pageMeta{title: "Sign in", active: "login"}, pages.Login(message, email))
}
