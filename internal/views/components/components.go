// Package components holds the small building blocks shared by every page.
package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"creatives/internal/content"
	"creatives/models"
)

// Alert kinds.
const (
	AlertError   = "error"
	AlertSuccess = "success"
)

// Alert renders a dismissible message. An empty message renders nothing.
func Alert(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if strings.TrimSpace(message) == "" {
			return nil
		}
		m := NewWriter(w)
		m.Rawf(`<div class="alert alert-%s" role="alert" data-alert="%s">`, Text(kind), Text(kind))
		m.Text(message)
		m.Raw(`</div>`)
		return m.Err()
	})
}

// HeaderData drives the site header.
type HeaderData struct {
	Identity   *models.Identity
	Query      string
	ShowSearch bool
	Active     string
}

// Header renders the top navigation bar.
func Header(data HeaderData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewWriter(w)
		m.Raw(`<header class="site-header"><a class="brand" href="/">Creatives</a>`)
		if data.ShowSearch {
			m.Rawf(`<form class="search" method="get" action="/"><input type="search" name="q" placeholder="Search creative work..." value="%s"></form>`, Text(data.Query))
		}
		m.Raw(`<nav>`)
		if data.Identity != nil {
			writeNavLink(m, data.Active, "create", "/create", "Create")
			writeNavLink(m, data.Active, "profile", "/profile", "Profile")
			writeNavLink(m, data.Active, "themes", "/themes", "Themes")
			m.Rawf(`<span class="nav-user">%s</span>`, Text(data.Identity.Name))
			m.Raw(`<form method="post" action="/logout"><button type="submit">Sign out</button></form>`)
		} else {
			writeNavLink(m, data.Active, "themes", "/themes", "Themes")
			writeNavLink(m, data.Active, "login", "/login", "Sign in")
			writeNavLink(m, data.Active, "signup", "/signup", "Sign up")
		}
		m.Raw(`</nav></header>`)
		return m.Err()
	})
}

func writeNavLink(m *Writer, active, section, href, label string) {
	m.Rawf(`<a href="%s" data-nav-section="%s" data-state="%s">%s</a>`, href, section, linkState(active, section), Text(label))
}

func linkState(active, section string) string {
	if active == section {
		return "active"
	}
	return "inactive"
}

// TagList renders tags as hash-prefixed badges.
func TagList(tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(tags) == 0 {
			return nil
		}
		m := NewWriter(w)
		m.Raw(`<ul class="tags">`)
		for _, tag := range tags {
			m.Rawf(`<li class="badge">#%s</li>`, Text(tag))
		}
		m.Raw(`</ul>`)
		return m.Err()
	})
}

// PostCardData drives a single post card.
type PostCardData struct {
	Post    models.Post
	Author  content.Author
	CanLike bool
}

// PostCard renders a post with its author, tags and like control.
func PostCard(data PostCardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		post := data.Post
		m := NewWriter(w)
		m.Rawf(`<article class="post-card" id="post-%d" data-category="%s">`, post.ID, Text(string(post.Category)))
		m.Rawf(`<header><img class="avatar" src="%s" alt=""><div><strong>%s</strong> <span class="muted">@%s</span><div class="muted">%s</div></div>`,
			Text(data.Author.AvatarRef), Text(data.Author.Name), Text(data.Author.Username), Text(post.CreatedLabel))
		m.Rawf(`<span class="badge category">%s</span></header>`, Text(string(post.Category)))
		if post.IsDraft {
			m.Raw(`<span class="badge draft">Draft</span>`)
		}
		m.Rawf(`<img class="post-image" src="%s" alt="%s">`, Text(post.ImageRef), Text(post.Title))
		m.Rawf(`<h3>%s</h3><p>%s</p>`, Text(post.Title), Text(post.Description))
		m.Render(ctx, TagList(post.Tags))
		m.Render(ctx, LikeButton(post, data.CanLike))
		m.Rawf(`<span class="comments">%d</span>`, post.CommentCount)
		m.Raw(`</article>`)
		return m.Err()
	})
}

// LikeButton renders the like toggle and count. It is also the HTMX swap
// target after a toggle.
func LikeButton(post models.Post, enabled bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewWriter(w)
		target := fmt.Sprintf("like-%d", post.ID)
		state := "off"
		if post.Liked {
			state = "on"
		}
		if !enabled {
			m.Rawf(`<span class="like" id="%s" data-liked="%s">%d</span>`, target, state, post.LikeCount)
			return m.Err()
		}
		m.Rawf(`<form class="like" id="%s" method="post" action="/posts/%d/like" hx-post="/posts/%d/like" hx-target="#%s" hx-swap="outerHTML">`,
			target, post.ID, post.ID, target)
		m.Rawf(`<button type="submit" data-liked="%s" aria-pressed="%t">%d</button></form>`, state, post.Liked, post.LikeCount)
		return m.Err()
	})
}

// EmptyState renders a centered placeholder message.
func EmptyState(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewWriter(w)
		m.Rawf(`<div class="empty-state"><p class="muted">%s</p></div>`, Text(message))
		return m.Err()
	})
}
