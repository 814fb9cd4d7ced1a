package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

// JWTMiddleware guards a route group. Requests carrying a valid access token
// proceed with the subject's ID stored in the "user_id" local; everything
// else is rejected with 401.
func JWTMiddleware(secret string) fiber.Handler {
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		raw := bearerFromHeader(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "access token required")
		}

		parsed, err := parseMiddlewareClaimsFn(raw, &Claims{}, func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !parsed.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "access token invalid or expired")
		}

		claims, ok := parsed.Claims.(*Claims)
		if !ok || claims.UserID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "access token invalid or expired")
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}

func bearerFromHeader(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
