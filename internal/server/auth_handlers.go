package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/s-kanako/france-keijiban/internal/models"
)

// Signup handles POST /auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.identity.SignUp(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// Login handles POST /auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	token, user, err := s.identity.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
