package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/golang-jwt/jwt"
)

// ErrEmptySecret is returned when no signing secret is configured.
var ErrEmptySecret = errors.New("jwt secret is not configured")

// GenerateToken creates an HS256 token carrying the user principal. The
// identity provider normally issues these; the server only needs it for
// tests and local tooling.
func GenerateToken(user models.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	// Create the token
	token := jwt.New(jwt.SigningMethodHS256)

	// Set claims
	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = user.ID
	claims["email"] = user.Email
	claims["email_verified"] = user.EmailVerified
	claims["is_admin"] = user.IsAdmin
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

// ParseToken validates an HMAC-signed token and returns the principal it
// names.
func ParseToken(tokenString, secret string) (models.User, error) {
	if secret == "" {
		return models.User{}, ErrEmptySecret
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.User{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.User{}, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return models.User{}, errors.New("token has no subject")
	}
	email, _ := claims["email"].(string)
	verified, _ := claims["email_verified"].(bool)
	admin, _ := claims["is_admin"].(bool)

	return models.User{
		ID:            sub,
		Email:         email,
		EmailVerified: verified,
		IsAdmin:       admin,
	}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
