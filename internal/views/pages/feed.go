package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"creatives/internal/content"
	"creatives/internal/views/components"
	"creatives/models"
)

// FeedData drives the home feed.
type FeedData struct {
	Identity *models.Identity
	Filter   content.FeedFilter
	Posts    []models.Post
}

// Feed renders the hero or welcome banner, the category filter and the
// filtered posts.
func Feed(data FeedData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewWriter(w)
		if data.Identity == nil {
			m.Raw(`<section class="hero"><h2>Showcase Your Creative Work</h2>`)
			m.Raw(`<p class="muted">Join a community of artists, designers, and creators. Share your work, get inspired, and connect with fellow creatives.</p>`)
			m.Raw(`<a class="button" href="/signup">Get Started</a> <a class="button outline" href="#feed">Explore Work</a></section>`)
		} else {
			m.Rawf(`<section class="welcome"><h2>Welcome back, %s!</h2>`, components.Text(data.Identity.Name))
			m.Raw(`<p class="muted">Discover amazing creative work from the community</p></section>`)
		}

		m.Raw(`<nav class="category-filter">`)
		for _, category := range append([]string{content.AllCategories}, categoryNames()...) {
			label := category
			if category == content.AllCategories {
				label = "All Categories"
			}
			state := "inactive"
			if strings.EqualFold(data.Filter.Category, category) {
				state = "active"
			}
			m.Rawf(`<a href="%s" data-category="%s" data-state="%s">%s</a>`,
				components.Text(FeedURL(content.FeedFilter{Query: data.Filter.Query, Category: category, Sort: data.Filter.Sort})),
				category, state, components.Text(label))
		}
		m.Raw(`</nav>`)

		m.Raw(`<nav class="sort-filter">`)
		for _, sort := range []content.Sort{content.SortRecent, content.SortPopular} {
			state := "inactive"
			if data.Filter.Sort == sort {
				state = "active"
			}
			m.Rawf(`<a href="%s" data-sort="%s" data-state="%s">%s</a>`,
				components.Text(FeedURL(content.FeedFilter{Query: data.Filter.Query, Category: data.Filter.Category, Sort: sort})),
				sort, state, capitalize(string(sort)))
		}
		m.Raw(`</nav>`)

		m.Raw(`<div id="feed" class="feed">`)
		if len(data.Posts) == 0 {
			m.Render(ctx, components.EmptyState("No posts found matching your criteria."))
			if data.Identity != nil {
				m.Raw(`<a class="button" href="/create">Create Your First Post</a>`)
			}
		}
		for _, post := range data.Posts {
			m.Render(ctx, components.PostCard(components.PostCardData{
				Post:    post,
				Author:  content.ResolveAuthor(post.OwnerID, data.Identity),
				CanLike: data.Identity != nil,
			}))
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

// FeedURL builds the feed link for a filter, omitting default values.
func FeedURL(filter content.FeedFilter) string {
	params := make([]string, 0, 3)
	if filter.Query != "" {
		params = append(params, "q="+queryEscape(filter.Query))
	}
	if filter.Category != "" && filter.Category != content.AllCategories {
		params = append(params, "category="+queryEscape(filter.Category))
	}
	if filter.Sort != "" && filter.Sort != content.SortRecent {
		params = append(params, "sort="+queryEscape(string(filter.Sort)))
	}
	if len(params) == 0 {
		return "/"
	}
	return "/?" + strings.Join(params, "&")
}

func categoryNames() []string {
	categories := models.Categories()
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = string(category)
	}
	return names
}
