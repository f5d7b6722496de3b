package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"creatives/internal/content"
	apptheme "creatives/internal/theme"
	"creatives/models"
)

func render(t *testing.T, component templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestSignupFormValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		form  SignupForm
		field string
		want  string
	}{
		{"missing name", SignupForm{Username: "annc", Email: "a@b.com", Password: "secret1"}, "name", "Name is required"},
		{"short username", SignupForm{Name: "Ann", Username: "an", Email: "a@b.com", Password: "secret1"}, "username", "Username must be at least 3 characters"},
		{"bad email", SignupForm{Name: "Ann", Username: "annc", Email: "a@b", Password: "secret1"}, "email", "Email is invalid"},
		{"short password", SignupForm{Name: "Ann", Username: "annc", Email: "a@b.com", Password: "12345"}, "password", "Password must be at least 6 characters"},
		{"missing password", SignupForm{Name: "Ann", Username: "annc", Email: "a@b.com"}, "password", "Password is required"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := tt.form.Validate()
			if errs[tt.field] != tt.want {
				t.Fatalf("Validate()[%q] = %q, want %q (all: %v)", tt.field, errs[tt.field], tt.want, errs)
			}
		})
	}

	valid := SignupForm{Name: "Ann", Username: "annc", Email: "a@b.com", Password: "secret1"}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid form, got %v", errs)
	}
}

func TestLoginRendersMessageAndEmail(t *testing.T) {
	out := render(t, Login("We were unable to sign you in. Please try again.", "a@b.com"))
	if !strings.Contains(out, "unable to sign you in") || !strings.Contains(out, `value="a@b.com"`) {
		t.Fatalf("unexpected login markup: %s", out)
	}
}

func TestSignupRendersFieldErrors(t *testing.T) {
	out := render(t, Signup("", SignupForm{Name: "Ann", Password: "secret"}, map[string]string{"username": "Username is required"}))
	if !strings.Contains(out, `data-field="username"`) || !strings.Contains(out, `value="Ann"`) {
		t.Fatalf("expected field error and kept values: %s", out)
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("password must never be echoed back")
	}
}

func TestFeedRendersPostsAndFilters(t *testing.T) {
	identity := &models.Identity{ID: "1", Name: "John Doe", Username: "johndoe"}
	data := FeedData{
		Identity: identity,
		Filter:   content.FeedFilter{Category: "design", Sort: content.SortPopular},
		Posts: []models.Post{
			{ID: 1, OwnerID: "2", Title: "Brand", Category: models.CategoryDesign},
			{ID: 2, OwnerID: "1", Title: "Mine", Category: models.CategoryDesign},
		},
	}
	out := render(t, Feed(data))
	for _, token := range []string{"Welcome back, John Doe!", "Sarah Chen", ">You<", `data-category="design" data-state="active"`, `data-sort="popular" data-state="active"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected feed to contain %q: %s", token, out)
		}
	}

	empty := render(t, Feed(FeedData{Filter: content.FeedFilter{Category: content.AllCategories}}))
	if !strings.Contains(empty, "Showcase Your Creative Work") || !strings.Contains(empty, "No posts found matching your criteria.") {
		t.Fatalf("unexpected empty feed: %s", empty)
	}
}

func TestFeedURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filter content.FeedFilter
		want   string
	}{
		{content.FeedFilter{}, "/"},
		{content.FeedFilter{Category: content.AllCategories, Sort: content.SortRecent}, "/"},
		{content.FeedFilter{Query: "street art", Category: "photography", Sort: content.SortPopular}, "/?q=street+art&category=photography&sort=popular"},
	}
	for _, tt := range tests {
		if got := FeedURL(tt.filter); got != tt.want {
			t.Fatalf("FeedURL(%+v) = %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestCreateRendersSkippedFiles(t *testing.T) {
	out := render(t, Create(CreateData{
		Form:    CreateForm{Title: "T", Tags: []string{"art", "ink"}, Category: models.CategoryPhotography, IsDraft: true},
		Skipped: []string{"notes.txt"},
	}))
	for _, token := range []string{"notes.txt", `value="art, ink"`, `value="photography" selected`, "checked"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected create page to contain %q: %s", token, out)
		}
	}
}

func TestProfileRendersSelectedTab(t *testing.T) {
	identity := models.Identity{ID: "1", Name: "John Doe", Username: "johndoe"}
	profile := content.BuildProfile([]models.Post{
		{ID: 1, OwnerID: "1", Title: "Published", LikeCount: 4},
		{ID: 2, OwnerID: "1", Title: "Sketch", IsDraft: true},
	}, identity)

	out := render(t, Profile(ProfileData{Profile: profile, Tab: content.TabDrafts}))
	if !strings.Contains(out, "Sketch") || strings.Contains(out, ">Published<") {
		t.Fatalf("expected only drafts in the drafts tab: %s", out)
	}
	if !strings.Contains(out, `action="/posts/2"`) {
		t.Fatalf("expected publish form for owned draft: %s", out)
	}

	saved := render(t, Profile(ProfileData{Profile: profile, Tab: content.TabSaved}))
	if !strings.Contains(saved, "No saved posts yet") {
		t.Fatalf("expected empty saved tab: %s", saved)
	}
}

func TestThemesMarksActiveSelection(t *testing.T) {
	setting := apptheme.Setting{Mode: apptheme.ModeDark, Palette: apptheme.PalettePurple}
	tokens := apptheme.Lookup(setting.Palette, setting.Mode)
	out := render(t, Themes(setting, tokens))
	if !strings.Contains(out, `data-palette="purple" data-state="active"`) {
		t.Fatalf("expected purple palette active: %s", out)
	}
	if !strings.Contains(out, `data-mode="dark" data-state="active"`) {
		t.Fatalf("expected dark mode active: %s", out)
	}
	if !strings.Contains(out, "primaryForeground") {
		t.Fatalf("expected token preview: %s", out)
	}
	if !strings.Contains(out, tokens.Primary) {
		t.Fatalf("expected preview to show the given token set: %s", out)
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	if ParseID(" 42 ") != 42 || ParseID("x") != 0 || ParseID("-1") != 0 {
		t.Fatalf("unexpected ParseID results")
	}
}
