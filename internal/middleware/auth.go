package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ActorContextKey = "actor"
	ActorHeader     = "X-User-Email"
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity resolves the acting user for change attribution. With a JWT secret
// configured, a bearer token wins over the X-User-Email header. Requests
// without either are anonymous; no route requires authentication.
func Identity(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := strings.TrimSpace(c.Get(ActorHeader))

		if authHeader := c.Get(fiber.HeaderAuthorization); jwtSecret != "" && authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return Unauthorized("Invalid authorization header format")
			}

			claims, err := ParseToken(parts[1], jwtSecret)
			if err != nil {
				return Unauthorized("Invalid or expired token")
			}
			actor = claims.Email
			if actor == "" {
				actor = claims.Subject
			}
		}

		c.Locals(ActorContextKey, actor)
		return c.Next()
	}
}

func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GetActor returns the identity resolved by Identity, or "" for anonymous requests.
func GetActor(c *fiber.Ctx) string {
	actor, _ := c.Locals(ActorContextKey).(string)
	return actor
}
