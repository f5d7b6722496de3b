package handlers

import (
	"net/http"
	"strings"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/views/pages"
)

const signUpFailedMessage = "Failed to create account. Please try again."

// Signup displays the registration form and processes new sign-ups.
func Signup(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling signup request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "identity already signed in during signup, redirecting home")
			redirectToHome(w, r)
			return
		}
		renderSignup(w, r, "", pages.SignupForm{}, nil)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse signup form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		form := pages.SignupForm{
			Name:     strings.TrimSpace(r.PostFormValue("name")),
			Username: strings.TrimSpace(r.PostFormValue("username")),
			Email:    strings.TrimSpace(r.PostFormValue("email")),
			Bio:      strings.TrimSpace(r.PostFormValue("bio")),
			Password: r.PostFormValue("password"),
		}
		if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
			applog.Debug(r.Context(), "signup form invalid", "fields", len(fieldErrors))
			renderSignup(w, r, "", form, fieldErrors)
			return
		}

		ws, err := currentWorkspace(r)
		if err != nil {
			applog.Error(r.Context(), "registration dependencies unavailable", "error", err)
			http.Error(w, "registration not available", http.StatusServiceUnavailable)
			return
		}

		err = ws.Content.SignUp(r.Context(), content.SignUpForm{
			Name:     form.Name,
			Username: form.Username,
			Email:    form.Email,
			Bio:      form.Bio,
			Password: form.Password,
		})
		if err != nil {
			applog.Error(r.Context(), "sign-up failed", "error", err)
			renderSignup(w, r, signUpFailedMessage, form, nil)
			return
		}
		if err := sessionManager.RenewToken(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to renew session token", "error", err)
		}

		applog.Debug(r.Context(), "signup completed", "origin", ws.ID, "username", form.Username)
		redirectToHome(w, r)
	default:
		applog.Debug(r.Context(), "method not allowed for signup", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderSignup(w http.ResponseWriter, r *http.Request, message string, form pages.SignupForm, fieldErrors map[string]string) {
	renderPage(w, r, pageMeta{title: "Sign up", active: "signup"}, pages.Signup(message, form, fieldErrors))
}
