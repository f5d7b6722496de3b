package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"creatives/internal/content"
	"creatives/internal/views/components"
)

// ProfileData drives the profile page.
type ProfileData struct {
	Profile content.Profile
	Tab     content.Tab
	Message string
}

var tabLabels = map[content.Tab]string{
	content.TabPosts:  "Posts",
	content.TabDrafts: "Drafts",
	content.TabLiked:  "Liked",
	content.TabSaved:  "Saved",
}

var emptyTab = map[content.Tab]string{
	content.TabPosts:  "No posts yet",
	content.TabDrafts: "No drafts yet",
	content.TabLiked:  "No liked posts yet",
	content.TabSaved:  "No saved posts yet",
}

// Profile renders the identity card, stats, the edit form and the selected tab.
func Profile(data ProfileData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		profile := data.Profile
		identity := profile.Identity
		m := components.NewWriter(w)

		m.Raw(`<section class="profile">`)
		m.Rawf(`<img class="avatar large" src="%s" alt=""><h1>%s</h1><p class="muted">@%s</p><p>%s</p>`,
			components.Text(identity.AvatarRef), components.Text(identity.Name), components.Text(identity.Username), components.Text(identity.Bio))
		m.Rawf(`<dl class="stats"><div><dt>Posts</dt><dd>%d</dd></div><div><dt>Drafts</dt><dd>%d</dd></div><div><dt>Likes</dt><dd>%d</dd></div></dl>`,
			len(profile.Published), len(profile.Drafts), totalLikes(profile))
		m.Render(ctx, components.Alert(components.AlertSuccess, data.Message))

		m.Raw(`<details class="edit-profile"><summary>Edit Profile</summary><form method="post" action="/profile">`)
		m.Rawf(`<label>Name<input type="text" name="name" value="%s" required></label>`, components.Text(identity.Name))
		m.Rawf(`<label>Bio<textarea name="bio" rows="3">%s</textarea></label>`, components.Text(identity.Bio))
		m.Raw(`<button type="submit">Save</button></form></details>`)

		m.Raw(`<nav class="tabs">`)
		for _, tab := range content.Tabs() {
			state := "inactive"
			if tab == data.Tab {
				state = "active"
			}
			m.Rawf(`<a href="/profile?tab=%s" data-tab="%s" data-state="%s">%s</a>`, tab, tab, state, tabLabels[tab])
		}
		m.Raw(`</nav>`)

		posts := profile.Section(data.Tab)
		m.Rawf(`<div class="tab-panel" data-tab="%s">`, data.Tab)
		if len(posts) == 0 {
			m.Render(ctx, components.EmptyState(emptyTab[data.Tab]))
		}
		for _, post := range posts {
			m.Render(ctx, components.PostCard(components.PostCardData{
				Post:    post,
				Author:  content.ResolveAuthor(post.OwnerID, &identity),
				CanLike: true,
			}))
			if post.IsDraft && post.OwnerID == identity.ID {
				m.Rawf(`<form method="post" action="/posts/%d"><input type="hidden" name="draft" value="false"><button type="submit">Publish draft</button></form>`, post.ID)
			}
		}
		m.Raw(`</div></section>`)
		return m.Err()
	})
}

func totalLikes(profile content.Profile) int {
	total := 0
	for _, post := range profile.Published {
		total += post.LikeCount
	}
	return total
}
