package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"hr_payroll/config"
	"hr_payroll/types"
)

const (
	RoleRoot       = "root"
	RoleHRManager  = "hr_manager"
	RoleAccountant = "accountant"
	RoleEmployee   = "employee"
)

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

// authenticate validates the bearer token and copies user_id and role into Locals.
func authenticate(c *fiber.Ctx) error {
	token, err := extractToken(c)
	if err != nil {
		return err
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	c.Locals("user_id", userID)
	c.Locals("role", role)
	return nil
}

func RequireAuth(c *fiber.Ctx) error {
	if err := authenticate(c); err != nil {
		return unauthorized(c, err)
	}
	return c.Next()
}

// RequireRole admits authenticated callers whose role is one of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticate(c); err != nil {
			return unauthorized(c, err)
		}

		if !slices.Contains(roles, c.Locals("role").(string)) {
			return c.Status(fiber.StatusForbidden).JSON(types.APIResponse{
				Success: false,
				Error:   "Insufficient role",
			})
		}
		return c.Next()
	}
}

// RequireHR admits payroll administrators.
func RequireHR(c *fiber.Ctx) error {
	return RequireRole(RoleRoot, RoleHRManager, RoleAccountant)(c)
}

func unauthorized(c *fiber.Ctx, err error) error {
	msg := types.MsgUnauthorized
	if fe, ok := err.(*fiber.Error); ok {
		msg = fe.Message
	}
	return c.Status(fiber.StatusUnauthorized).JSON(types.APIResponse{
		Success: false,
		Error:   msg,
	})
}
