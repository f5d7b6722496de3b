package content

import (
	"strings"

	"creatives/models"
)

// Tab selects a section of the profile page.
type Tab string

const (
	TabPosts  Tab = "posts"
	TabDrafts Tab = "drafts"
	TabLiked  Tab = "liked"
	TabSaved  Tab = "saved"
)

// Tabs lists the profile tabs in display order.
func Tabs() []Tab {
	return []Tab{TabPosts, TabDrafts, TabLiked, TabSaved}
}

// ParseTab returns the named tab, defaulting to TabPosts.
func ParseTab(value string) Tab {
	candidate := Tab(strings.ToLower(strings.TrimSpace(value)))
	for _, tab := range Tabs() {
		if tab == candidate {
			return tab
		}
	}
	return TabPosts
}

// Profile groups the posts shown on an identity's profile page.
type Profile struct {
	Identity  models.Identity
	Published []models.Post
	Drafts    []models.Post
	Liked     []models.Post
	// Saved has no backing model and is always empty.
	Saved []models.Post
}

// BuildProfile splits posts into the profile sections of identity.
func BuildProfile(posts []models.Post, identity models.Identity) Profile {
	profile := Profile{
		Identity:  identity,
		Published: []models.Post{},
		Drafts:    []models.Post{},
		Liked:     []models.Post{},
		Saved:     []models.Post{},
	}
	for _, post := range posts {
		if post.Liked {
			profile.Liked = append(profile.Liked, post.Clone())
		}
		if post.OwnerID != identity.ID {
			continue
		}
		if post.IsDraft {
			profile.Drafts = append(profile.Drafts, post.Clone())
		} else {
			profile.Published = append(profile.Published, post.Clone())
		}
	}
	return profile
}

// Section returns the posts listed under tab.
func (p Profile) Section(tab Tab) []models.Post {
	switch tab {
	case TabDrafts:
		return p.Drafts
	case TabLiked:
		return p.Liked
	case TabSaved:
		return p.Saved
	default:
		return p.Published
	}
}
