// Package auth implements session management and the authorization policy.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"linguaspace/internal/models"
	"linguaspace/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie holding the signed session token.
const SessionCookie = "session"

const (
	sessionIssuer   = "linguaspace"
	sessionAudience = "linguaspace-web"
	sessionLifetime = 7 * 24 * time.Hour
)

// SessionManager issues and resolves signed session tokens. The token is a
// server-signed, client-held reference to the user id; there is no
// server-side session table. It is tamper-evident but not encrypted, so it
// must never carry anything beyond the id.
type SessionManager struct {
	secret string
	users  repository.UserRepository
}

func NewSessionManager(secret string, users repository.UserRepository) *SessionManager {
	return &SessionManager{secret: secret, users: users}
}

// Issue creates a signed session token for the given user ID.
func (m *SessionManager) Issue(userID uint) (string, error) {
	if m.secret == "" {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": sessionIssuer,
		"aud": sessionAudience,
		"exp": now.Add(sessionLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Resolve maps a session token to the user it references. It returns
// (nil, nil) when the token is absent, invalid, expired, or references a
// user that no longer exists; only store failures produce an error.
func (m *SessionManager) Resolve(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != sessionIssuer {
		return nil, nil
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != sessionAudience {
		return nil, nil
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, nil
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, nil
	}

	user, err := m.users.GetByID(ctx, uint(userID))
	if err != nil {
		// A stale token pointing at a deleted user is a valid "not logged
		// in" state, not a failure.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SetCookie attaches the session token to the response.
func SetCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie removes the session association from the client.
func ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
