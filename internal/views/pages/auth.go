package pages

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"

	"creatives/internal/views/components"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// SignupForm holds the submitted registration fields.
type SignupForm struct {
	Name     string
	Username string
	Email    string
	Bio      string
	Password string
}

// Validate returns a message per invalid field. An empty map means the form
// can be submitted.
func (f SignupForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	switch username := strings.TrimSpace(f.Username); {
	case username == "":
		errs["username"] = "Username is required"
	case len(username) < 3:
		errs["username"] = "Username must be at least 3 characters"
	}
	switch email := strings.TrimSpace(f.Email); {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email is invalid"
	}
	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case len(f.Password) < 6:
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

// Login renders the sign-in form.
func Login(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewWriter(w)
		m.Raw(`<section class="auth-card" id="login"><h1>Welcome back</h1><p class="muted">Sign in to share your creative work</p>`)
		m.Render(ctx, components.Alert(components.AlertError, message))
		m.Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#login" hx-swap="outerHTML">`)
		m.Rawf(`<label>Email<input type="email" name="email" value="%s" required></label>`, components.Text(email))
		m.Raw(`<label>Password<input type="password" name="password" required></label>`)
		m.Raw(`<button type="submit">Sign in</button></form>`)
		m.Raw(`<p class="muted">Don't have an account? <a href="/signup">Sign up</a></p></section>`)
		return m.Err()
	})
}

// Signup renders the registration form with per-field errors.
func Signup(message string, form SignupForm, fieldErrors map[string]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewWriter(w)
		m.Raw(`<section class="auth-card" id="signup"><h1>Join Creatives</h1><p class="muted">Create your account to start sharing your work</p>`)
		m.Render(ctx, components.Alert(components.AlertError, message))
		m.Raw(`<form method="post" action="/signup" hx-post="/signup" hx-target="#signup" hx-swap="outerHTML">`)
		writeField(m, "Full Name", "text", "name", form.Name, fieldErrors["name"])
		writeField(m, "Username", "text", "username", form.Username, fieldErrors["username"])
		writeField(m, "Email", "email", "email", form.Email, fieldErrors["email"])
		writeField(m, "Password", "password", "password", "", fieldErrors["password"])
		m.Rawf(`<label>Bio (Optional)<textarea name="bio" rows="3">%s</textarea></label>`, components.Text(form.Bio))
		m.Raw(`<button type="submit">Create Account</button></form>`)
		m.Raw(`<p class="muted">Already have an account? <a href="/login">Sign in</a></p></section>`)
		return m.Err()
	})
}

func writeField(m *components.Writer, label, kind, name, value, fieldErr string) {
	class := ""
	if fieldErr != "" {
		class = ` class="invalid"`
	}
	m.Rawf(`<label>%s<input type="%s" name="%s" value="%s"%s></label>`, components.Text(label), kind, name, components.Text(value), class)
	if fieldErr != "" {
		m.Rawf(`<p class="field-error" data-field="%s">%s</p>`, name, components.Text(fieldErr))
	}
}
