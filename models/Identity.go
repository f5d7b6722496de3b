package models

// PlaceholderAvatar is the avatar reference given to every identity until a
// real upload replaces it.
const PlaceholderAvatar = "/placeholder.svg?height=120&width=120"

// Identity is the currently authenticated creator for an origin.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarRef string `json:"avatar"`
}
