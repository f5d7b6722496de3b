package content

import "creatives/models"

// Author is the display identity shown next to a post.
type Author struct {
	Name      string
	Username  string
	AvatarRef string
}

const authorAvatar = "/placeholder.svg?height=40&width=40"

var directory = map[string]Author{
	"2": {Name: "Sarah Chen", Username: "sarahdesigns", AvatarRef: authorAvatar},
	"3": {Name: "Alex Rivera", Username: "alexphoto", AvatarRef: authorAvatar},
	"4": {Name: "Maya Patel", Username: "mayaillustrates", AvatarRef: authorAvatar},
	"5": {Name: "David Kim", Username: "davidarch", AvatarRef: authorAvatar},
	"6": {Name: "Luna Martinez", Username: "lunadigital", AvatarRef: authorAvatar},
	"7": {Name: "Emma Thompson", Username: "emmabotanical", AvatarRef: authorAvatar},
	"8": {Name: "Ryan Foster", Username: "ryanux", AvatarRef: authorAvatar},
	"9": {Name: "Zoe Williams", Username: "zoeportraits", AvatarRef: authorAvatar},
}

// AnonymousAuthor is shown for owner ids nobody recognizes.
var AnonymousAuthor = Author{Name: "Anonymous User", Username: "anonymous", AvatarRef: authorAvatar}

// ResolveAuthor maps a post owner to its display identity. Posts of the
// signed-in identity are shown as "You".
func ResolveAuthor(ownerID string, current *models.Identity) Author {
	if current != nil && current.ID == ownerID {
		return Author{Name: "You", Username: current.Username, AvatarRef: current.AvatarRef}
	}
	if author, ok := directory[ownerID]; ok {
		return author
	}
	return AnonymousAuthor
}
