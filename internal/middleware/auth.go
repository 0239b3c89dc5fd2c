package middleware

import (
	"errors"
	"strings"

	"github.com/dsp-forms/core/internal/models"
	"github.com/dsp-forms/core/internal/pkg/jwt"
	"github.com/dsp-forms/core/internal/pkg/response"
	sessionpkg "github.com/dsp-forms/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const contextKeyIdentity = "identity"

// Identity is the request-scoped authenticated caller, resolved once per
// request and passed down to handlers and services.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Auth returns a middleware that enforces JWT authentication.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := resolveIdentity(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyIdentity, ident)
		c.Next()
	}
}

// OptionalAuth resolves the identity if a valid token is present, but does
// not block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, err := resolveIdentity(db, extractToken(c)); err == nil {
			c.Set(contextKeyIdentity, ident)
		}
		c.Next()
	}
}

// AdminOnly rejects callers without the administrator flag. Must run after
// Auth. This is the only authorization check on the admin surface; services
// trust their callers.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if ident == nil || !ident.IsAdmin {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, or nil for anonymous
// requests.
func CurrentIdentity(c *gin.Context) *Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return nil
	}
	ident, _ := v.(*Identity)
	return ident
}

func resolveIdentity(db *gorm.DB, rawToken string) (*Identity, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	active, err := sessionpkg.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.New("session expired or revoked")
	}

	var u models.UserModel
	if err := db.Select("id, email, name, is_admin").
		Where("id = ?", claims.UserID).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}, nil
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
