package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"creatives/internal/config"
	"creatives/internal/content"
	"creatives/internal/db"
	"creatives/internal/db/mock"
	"creatives/internal/redis"
	"creatives/internal/storage"
	"creatives/models"
)

// Import prepends the posts listed in a CSV file to one origin's feed.
//
//	import_posts posts.csv [origin-id]
//
// Columns: title, description, image, tags, category, draft, owner. Only the
// title is required.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_posts <csv> [origin-id]")
		os.Exit(2)
	}
	originID := mock.DemoOrigin
	if len(os.Args) > 2 {
		originID = os.Args[2]
	}

	if err := run(context.Background(), os.Args[1], originID); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath, originID string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}
	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	backend, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	imported, err := importPosts(ctx, backend, csvPath, originID, time.Now)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d posts from %s into origin %s\n", imported, filepath.Base(csvPath), originID)
	return nil
}

func openBackend(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return redis.NewStore(client), nil
	case config.BackendDatabase:
		database, err := db.Initialize(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.AutoMigrate(database); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		return db.NewStore(database), nil
	default:
		return nil, fmt.Errorf("storage backend %q cannot be imported into", cfg.Backend)
	}
}

// importPosts reads csvPath and writes the resulting posts ahead of the
// origin's existing ones. An origin with no stored posts starts from the seed.
func importPosts(ctx context.Context, backend storage.Store, csvPath, originID string, now func() time.Time) (int, error) {
	if strings.TrimSpace(originID) == "" {
		return 0, fmt.Errorf("origin id must not be empty")
	}
	records, err := readCSV(csvPath)
	if err != nil {
		return 0, fmt.Errorf("read csv: %w", err)
	}

	kv := storage.NewScoped(backend, storage.OriginPrefix(originID))
	existing, err := loadPosts(ctx, kv)
	if err != nil {
		return 0, err
	}

	nextID := now().UnixMilli()
	for _, post := range existing {
		if post.ID >= nextID {
			nextID = post.ID + 1
		}
	}

	imported := make([]models.Post, 0, len(records))
	for idx, record := range records {
		post, err := buildPost(record)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", idx+1, err)
		}
		post.ID = nextID
		nextID++
		imported = append(imported, post)
	}

	posts := append(imported, existing...)
	raw, err := json.Marshal(posts)
	if err != nil {
		return 0, fmt.Errorf("encode posts: %w", err)
	}
	if err := kv.Set(ctx, content.PostsKey, string(raw)); err != nil {
		return 0, fmt.Errorf("write posts: %w", err)
	}
	return len(imported), nil
}

func loadPosts(ctx context.Context, kv storage.Store) ([]models.Post, error) {
	raw, ok, err := kv.Get(ctx, content.PostsKey)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	if !ok {
		seed, err := content.SeedPosts()
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		return seed, nil
	}
	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, fmt.Errorf("stored posts are corrupt: %w", err)
	}
	return posts, nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildPost(row map[string]string) (models.Post, error) {
	title := row["title"]
	if title == "" {
		return models.Post{}, errors.New("title is required")
	}

	category := models.CategoryDesign
	if value := row["category"]; value != "" {
		parsed, ok := models.ParseCategory(value)
		if !ok {
			return models.Post{}, fmt.Errorf("unknown category %q", value)
		}
		category = parsed
	}

	draft := false
	if value := row["draft"]; value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return models.Post{}, fmt.Errorf("draft: %w", err)
		}
		draft = parsed
	}

	image := row["image"]
	if image == "" {
		image = models.PlaceholderImage
	}
	owner := row["owner"]
	if owner == "" {
		owner = "imported"
	}

	return models.Post{
		OwnerID:      owner,
		Title:        title,
		Description:  row["description"],
		ImageRef:     image,
		Tags:         content.NormalizeTags(content.SplitTags(row["tags"])),
		CreatedLabel: content.JustNow,
		Category:     category,
		IsDraft:      draft,
	}, nil
}
