// Package repository contains the domain logic layered on the keyed
// store. It is the only write path into the store for posts and enforces
// the post invariants.
package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/s-kanako/france-keijiban/internal/kv"
	"github.com/s-kanako/france-keijiban/internal/models"
)

// CreatePostInput carries the client-supplied fields for a new post.
// Author is self-asserted; guest submissions are accepted by policy.
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Author   string
	ImageURL *string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, category string) ([]models.Post, error)
	ListPage(ctx context.Context, category string, limit int, cursor string) ([]models.Post, string, error)
	Create(ctx context.Context, in CreatePostInput) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

// postRepository implements PostRepository on a kv.Store.
type postRepository struct {
	store kv.Store
}

// NewPostRepository creates a new post repository
func NewPostRepository(store kv.Store) PostRepository {
	return &postRepository{store: store}
}

// List scans the post namespace, optionally filters by category (exact,
// case-sensitive), and sorts newest first. An empty result is a valid
// outcome, not an error.
func (r *postRepository) List(ctx context.Context, category string) ([]models.Post, error) {
	values, err := r.store.ScanPrefix(ctx, kv.PostPrefix)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	posts := make([]models.Post, 0, len(values))
	for _, data := range values {
		var p models.Post
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, models.NewInternalError(fmt.Errorf("decode post record: %w", err))
		}
		if category != "" && p.Category != category {
			continue
		}
		posts = append(posts, p)
	}

	// Newest first; ties fall back to id so the order is total, which
	// the cursor pagination in ListPage depends on.
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})

	return posts, nil
}

// ListPage is the paginated variant of List. A zero limit returns the
// whole listing. The returned cursor is opaque; an empty cursor means
// the listing is exhausted.
func (r *postRepository) ListPage(ctx context.Context, category string, limit int, cursor string) ([]models.Post, string, error) {
	posts, err := r.List(ctx, category)
	if err != nil {
		return nil, "", err
	}

	if cursor != "" {
		after, afterID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", models.NewValidationError("Invalid cursor")
		}
		i := sort.Search(len(posts), func(i int) bool {
			if !posts[i].CreatedAt.Equal(after) {
				return posts[i].CreatedAt.Before(after)
			}
			return posts[i].ID > afterID
		})
		posts = posts[i:]
	}

	if limit <= 0 || len(posts) <= limit {
		return posts, "", nil
	}

	page := posts[:limit]
	last := page[len(page)-1]
	return page, encodeCursor(last.CreatedAt, last.ID), nil
}

// Create validates the input, assigns id and timestamps, and persists
// the record. It returns the post only after the store write is
// acknowledged, so a failed write never hands back a dangling reference.
func (r *postRepository) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" || in.Category == "" || in.Author == "" {
		return nil, models.NewValidationError("Title, content, category, and author are required")
	}
	if !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Unknown category")
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Author:    in.Author,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
		Likes:     0,
		Comments:  0,
	}

	data, err := json.Marshal(post)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.store.Set(ctx, kv.PostPrefix+post.ID, data); err != nil {
		return nil, models.NewInternalError(err)
	}

	return post, nil
}

// GetByID fetches a post by exact key. Returns nil when absent.
func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	data, found, err := r.store.Get(ctx, kv.PostPrefix+id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !found {
		return nil, nil
	}
	post := &models.Post{}
	if err := json.Unmarshal(data, post); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("decode post record: %w", err))
	}
	return post, nil
}

// Delete removes a post, surfacing not-found when the id was never
// created or was already deleted.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post")
	}
	if err := r.store.Delete(ctx, kv.PostPrefix+id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func encodeCursor(createdAt time.Time, id string) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", err
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("malformed cursor")
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", err
	}
	return ts, parts[1], nil
}
