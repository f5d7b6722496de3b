package content

import (
	"net/url"
	"slices"
	"strings"

	"creatives/models"
)

// Sort orders the feed.
type Sort string

const (
	SortRecent  Sort = "recent"
	SortPopular Sort = "popular"
)

// AllCategories selects every category in a FeedFilter.
const AllCategories = "all"

// FeedFilter narrows the published posts shown on the feed.
type FeedFilter struct {
	Query    string
	Category string
	Sort     Sort
}

// FeedFilterFrom reads q, category and sort from query parameters. Unknown
// values fall back to every category and the recent order.
func FeedFilterFrom(values url.Values) FeedFilter {
	filter := FeedFilter{
		Query:    strings.TrimSpace(values.Get("q")),
		Category: AllCategories,
		Sort:     SortRecent,
	}
	if category, ok := models.ParseCategory(values.Get("category")); ok {
		filter.Category = string(category)
	}
	if Sort(strings.ToLower(values.Get("sort"))) == SortPopular {
		filter.Sort = SortPopular
	}
	return filter
}

// Feed returns the published posts matching filter. Search is a
// case-insensitive substring match over title, description and tags.
func Feed(posts []models.Post, filter FeedFilter) []models.Post {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := strings.ToLower(filter.Category)

	out := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.IsDraft {
			continue
		}
		if category != "" && category != AllCategories && string(post.Category) != category {
			continue
		}
		if query != "" && !matches(post, query) {
			continue
		}
		out = append(out, post.Clone())
	}

	if filter.Sort == SortPopular {
		slices.SortStableFunc(out, func(a, b models.Post) int {
			return b.LikeCount - a.LikeCount
		})
	}
	return out
}

func matches(post models.Post, query string) bool {
	if strings.Contains(strings.ToLower(post.Title), query) ||
		strings.Contains(strings.ToLower(post.Description), query) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
