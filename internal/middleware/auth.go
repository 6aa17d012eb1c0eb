package middleware

import (
	"net/url"
	"strconv"
	"strings"

	"plume/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// LoginPath is where unauthenticated browser requests are sent, with the
// original path preserved in the "next" query parameter.
const LoginPath = "/auth/login"

// AuthRequired enforces authentication. Browser flows are the primary
// surface here, so a missing or invalid credential answers with a redirect
// to the login page carrying the original URL, not a bare 401.
func AuthRequired(c *fiber.Ctx) error {
	userID, ok := parseUserID(c)
	if !ok {
		return c.Redirect(LoginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}
	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth resolves the current user when a valid credential is present
// and continues anonymously otherwise.
func OptionalAuth(c *fiber.Ctx) error {
	if userID, ok := parseUserID(c); ok {
		c.Locals("userID", userID)
	}
	return c.Next()
}

// parseUserID extracts and validates the JWT from the Authorization header
// or the token cookie, returning the subject user ID.
func parseUserID(c *fiber.Ctx) (uint, bool) {
	tokenString := ""

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0, false
		}
		tokenString = parts[1]
	} else {
		tokenString = c.Cookies("token")
	}
	if tokenString == "" {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return 0, false
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return 0, false
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(userIDVal), true
}
