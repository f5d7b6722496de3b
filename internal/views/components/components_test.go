package components

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"creatives/internal/content"
	"creatives/models"
)

func TestLinkState(t *testing.T) {
	if got := linkState("themes", "themes"); got != "active" {
		t.Fatalf("expected active state when sections match, got %q", got)
	}
	if got := linkState("profile", "themes"); got != "inactive" {
		t.Fatalf("expected inactive state when sections differ, got %q", got)
	}
}

func TestAlertEscapesMessage(t *testing.T) {
	var buf bytes.Buffer
	if err := Alert(AlertError, "<b>nope</b>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render alert: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>") || !strings.Contains(out, "&lt;b&gt;nope") {
		t.Fatalf("expected escaped message: %s", out)
	}

	buf.Reset()
	_ = Alert(AlertError, "  ").Render(context.Background(), &buf)
	if buf.Len() != 0 {
		t.Fatalf("expected empty alert to render nothing, got %q", buf.String())
	}
}

func TestHeaderReflectsIdentity(t *testing.T) {
	var buf bytes.Buffer
	identity := &models.Identity{Name: "Ann"}
	if err := Header(HeaderData{Identity: identity, Active: "profile"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render header: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Sign out") || strings.Contains(out, "Sign up") {
		t.Fatalf("expected signed-in navigation: %s", out)
	}
	if !strings.Contains(out, `data-nav-section="profile" data-state="active"`) {
		t.Fatalf("expected active profile link: %s", out)
	}

	buf.Reset()
	_ = Header(HeaderData{ShowSearch: true, Query: `"x"`}).Render(context.Background(), &buf)
	if !strings.Contains(buf.String(), "Sign in") || !strings.Contains(buf.String(), "&#34;x&#34;") {
		t.Fatalf("expected signed-out navigation with escaped query: %s", buf.String())
	}
}

func TestPostCardRendersValues(t *testing.T) {
	data := PostCardData{
		Post: models.Post{
			ID: 7, Title: "Neon", Description: "City", ImageRef: "preview:1",
			Tags: []string{"night"}, LikeCount: 3, Liked: true, CreatedLabel: "Just now",
			Category: models.CategoryIllustration, IsDraft: true,
		},
		Author:  content.Author{Name: "Luna", Username: "lunadigital"},
		CanLike: true,
	}
	var buf bytes.Buffer
	if err := PostCard(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render post card: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"Neon", "@lunadigital", "#night", "Draft", `action="/posts/7/like"`, `data-liked="on"`, "Just now"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestLikeButtonReadOnly(t *testing.T) {
	var buf bytes.Buffer
	_ = LikeButton(models.Post{ID: 1, LikeCount: 9}, false).Render(context.Background(), &buf)
	if strings.Contains(buf.String(), "<form") || !strings.Contains(buf.String(), ">9<") {
		t.Fatalf("expected read-only like count: %s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriterKeepsFirstError(t *testing.T) {
	m := NewWriter(failingWriter{})
	m.Raw("a")
	m.Text("b")
	if m.Err() == nil || m.Err().Error() != "closed" {
		t.Fatalf("expected write error, got %v", m.Err())
	}
}
