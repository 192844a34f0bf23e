package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/s-kanako/france-keijiban/internal/config"
	"github.com/s-kanako/france-keijiban/internal/models"
	"github.com/s-kanako/france-keijiban/internal/repository"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context, category string) ([]models.Post, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListPage(ctx context.Context, category string, limit int, cursor string) ([]models.Post, string, error) {
	args := m.Called(ctx, category, limit, cursor)
	return args.Get(0).([]models.Post), args.String(1), args.Error(2)
}

func (m *MockPostRepository) Create(ctx context.Context, in repository.CreatePostInput) (*models.Post, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func guestConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-key",
		AnonKey:         "public-anon-key",
		AllowGuestPosts: true,
	}
}

func TestGetPosts(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockPostRepository)
	s := &Server{config: guestConfig(), postRepo: mockRepo}
	app.Get("/posts", s.GetPosts)

	posts := []models.Post{{ID: "1", Title: "hello", Category: "tips"}}
	mockRepo.On("ListPage", mock.Anything, "", 0, "").Return(posts, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Posts      []models.Post `json:"posts"`
		NextCursor string        `json:"next_cursor"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.Posts, 1)
	assert.Empty(t, body.NextCursor)
}

func TestGetPostsCategoryFilter(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockPostRepository)
	s := &Server{config: guestConfig(), postRepo: mockRepo}
	app.Get("/posts", s.GetPosts)

	mockRepo.On("ListPage", mock.Anything, "travel", 0, "").Return([]models.Post{}, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/posts?category=travel", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertCalled(t, "ListPage", mock.Anything, "travel", 0, "")
}

func TestGetPostsPagination(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockPostRepository)
	s := &Server{config: guestConfig(), postRepo: mockRepo}
	app.Get("/posts", s.GetPosts)

	mockRepo.On("ListPage", mock.Anything, "", 2, "").
		Return([]models.Post{{ID: "1"}, {ID: "2"}}, "opaque-cursor", nil)

	req := httptest.NewRequest(http.MethodGet, "/posts?limit=2", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "opaque-cursor", body["next_cursor"])
}

func TestCreatePostHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success as guest",
			body: map[string]string{
				"title":    "New Post",
				"content":  "Hello world",
				"category": "tips",
				"author":   "guest-chan",
			},
			mockSetup: func(m *MockPostRepository) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(&models.Post{ID: "abc", Title: "New Post"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"title": "only a title",
			},
			mockSetup: func(m *MockPostRepository) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, models.NewValidationError("Title, content, category, and author are required"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockPostRepository)
			s := &Server{config: guestConfig(), postRepo: mockRepo}
			app.Post("/posts", s.CreatePost)
			tt.mockSetup(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreatePostGuestsDisabled(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockPostRepository)
	cfg := guestConfig()
	cfg.AllowGuestPosts = false
	s := &Server{config: cfg, postRepo: mockRepo}
	app.Post("/posts", s.CreatePost)

	body, _ := json.Marshal(map[string]string{
		"title": "t", "content": "c", "category": "tips", "author": "a",
	})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer public-anon-key")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetPostNotFound(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockPostRepository)
	s := &Server{config: guestConfig(), postRepo: mockRepo}
	app.Get("/posts/:id", s.GetPost)

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts/missing", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCategoriesHandler(t *testing.T) {
	app := fiber.New()
	s := &Server{config: guestConfig()}
	app.Get("/categories", s.GetCategories)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []models.Category `json:"categories"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.Categories, 8)
	assert.Equal(t, "supermarket", body.Categories[0].ID)
}
