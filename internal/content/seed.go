package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"creatives/models"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedPosts returns the example collection shown to origins with no stored
// posts.
func SeedPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := yaml.Unmarshal(seedYAML, &posts); err != nil {
		return nil, fmt.Errorf("decode seed posts: %w", err)
	}
	return posts, nil
}
