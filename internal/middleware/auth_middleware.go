package middleware

import (
	"strings"

	"crm/internal/models"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the session cookie holding the signed JWT.
const TokenCookie = "token"

// tokenFromRequest pulls the JWT out of the session cookie, falling
// back to a Bearer Authorization header for non-browser callers.
func tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(TokenCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthRequired checks for a valid token and stows the caller's
// identity in the request locals. Unauthenticated callers are
// redirected to the login page.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("username", claims["username"])
		c.Locals("role", claims["role"])
		if customerID, ok := claims["customer_id"]; ok {
			c.Locals("customer_id", customerID)
		}

		return c.Next()
	}
}

// UnauthenticatedOnly turns away callers who are already signed in;
// used on the login and registration pages.
func UnauthenticatedOnly(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString != "" {
			if _, err := authService.ValidateToken(tokenString); err == nil {
				return c.Redirect("/", fiber.StatusSeeOther)
			}
		}
		return c.Next()
	}
}

// RoleRequired permits the call only if the caller's role is in the
// allowed set; everyone else lands on their own home page, customers
// on /user and admins on the dashboard. Must run after AuthRequired.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if role == models.RoleCustomer {
			return c.Redirect("/user", fiber.StatusSeeOther)
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}

// Role returns the caller's role from the request locals.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}

// CustomerID returns the caller's linked customer ID, if any.
func CustomerID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("customer_id").(string)
	return id, ok && id != ""
}
