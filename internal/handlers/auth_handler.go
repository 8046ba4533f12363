package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"crm/internal/middleware"
	"crm/internal/models"
	"crm/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes. Login and
// registration are gated to signed-out callers only.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, unauthenticatedOnly fiber.Handler) {
	router.Get("/login", unauthenticatedOnly, h.ShowLogin)
	router.Post("/login", unauthenticatedOnly, h.HandleLogin)
	router.Get("/register", unauthenticatedOnly, h.ShowRegister)
	router.Post("/register", unauthenticatedOnly, h.HandleRegister)
	router.Get("/logout", h.HandleLogout)
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Name     string `json:"name" form:"name" validate:"omitempty,max=100"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=50"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ShowLogin returns the login form context.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

// ShowRegister returns the registration form context.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "register"})
}

// HandleRegister creates a customer account plus its linked profile and
// sends the caller to the login page.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
	}
	customer := &models.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if err := h.authService.Register(user, customer); err != nil {
		log.Printf("Error registering user: %v", err)
		if strings.Contains(err.Error(), "already taken") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	return c.Redirect("/login", fiber.StatusSeeOther)
}

// HandleLogin authenticates the caller, establishes the token cookie
// and sends them to the dashboard. A failed attempt answers inline
// with no redirect.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Username or password is incorrect",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLogout terminates the session and sends the caller back to the
// login page.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// validationResponse maps validator errors to a field → message body.
func validationResponse(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
