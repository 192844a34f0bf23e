package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/s-kanako/france-keijiban/internal/models"
	"github.com/s-kanako/france-keijiban/internal/repository"
)

// CreatePostRequest mirrors the creation form fields.
type CreatePostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Author   string  `json:"author"`
	ImageURL *string `json:"image_url"`
}

// GetPosts handles GET /posts. Accepts an optional exact-match category
// filter, and optional limit/cursor pagination; without a limit the full
// reverse-chronological listing is returned.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	category := c.Query("category")
	limit := c.QueryInt("limit", 0)
	cursor := c.Query("cursor")

	if limit > 100 {
		limit = 100
	}
	if limit < 0 {
		limit = 0
	}

	posts, next, err := s.postRepo.ListPage(c.Context(), category, limit, cursor)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	resp := fiber.Map{"posts": posts}
	if next != "" {
		resp["next_cursor"] = next
	}
	return c.JSON(resp)
}

// CreatePost handles POST /posts. A request with no token or with the
// public anon key is a guest submission (when the guest policy allows
// it); any other token must verify against the identity provider. Either
// way the author field stays client-asserted.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" || token == s.config.AnonKey {
		if !s.config.AllowGuestPosts {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Guest posting is disabled"))
		}
	} else {
		user, err := s.identity.VerifyToken(c.Context(), token)
		if err != nil {
			return models.RespondWithError(c, models.StatusCode(err), err)
		}
		c.Locals("userEmail", user.Email)
	}

	req := new(CreatePostRequest)
	if err := c.BodyParser(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postRepo.Create(c.Context(), repository.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Author:   req.Author,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	return c.JSON(fiber.Map{
		"post": post,
	})
}

// GetPost handles GET /posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id := c.Params("id")

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post"))
	}

	return c.JSON(fiber.Map{
		"post": post,
	})
}

// DeletePost handles DELETE /posts/:id. Runs behind AuthRequired; any
// authenticated account may delete any post, there is no ownership
// check on the author field.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// GetCategories handles GET /categories. The list is static, so no
// store interaction happens and the call always succeeds.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": models.Categories,
	})
}
