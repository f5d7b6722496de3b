package models

import "strings"

// Category groups posts for feed browsing.
type Category string

const (
	CategoryDesign       Category = "design"
	CategoryPhotography  Category = "photography"
	CategoryIllustration Category = "illustration"
)

// PlaceholderImage is used when a post is created without an accepted file.
const PlaceholderImage = "/placeholder.svg?height=400&width=600"

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryDesign, CategoryPhotography, CategoryIllustration}
}

// ParseCategory normalizes a category name, reporting whether it is known.
func ParseCategory(value string) (Category, bool) {
	candidate := Category(strings.ToLower(strings.TrimSpace(value)))
	for _, category := range Categories() {
		if candidate == category {
			return category, true
		}
	}
	return "", false
}

// Post is a single shareable piece of creative work. LikeCount and Liked move
// together: Liked implies LikeCount >= 1.
type Post struct {
	ID           int64    `json:"id" yaml:"id"`
	OwnerID      string   `json:"userId" yaml:"userId"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	ImageRef     string   `json:"image" yaml:"image"`
	Tags         []string `json:"tags" yaml:"tags"`
	LikeCount    int      `json:"likes" yaml:"likes"`
	CommentCount int      `json:"comments" yaml:"comments"`
	CreatedLabel string   `json:"createdAt" yaml:"createdAt"`
	Liked        bool     `json:"isLiked" yaml:"isLiked"`
	Category     Category `json:"category" yaml:"category"`
	IsDraft      bool     `json:"isDraft" yaml:"isDraft"`
}

// Clone returns a copy of the post that shares no slices with the receiver.
func (p Post) Clone() Post {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}
