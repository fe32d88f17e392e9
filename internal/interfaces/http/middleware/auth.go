package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/infrastructure/auth"
	"github.com/atelier-community/atelier/internal/shared/authorization"
	"github.com/atelier-community/atelier/internal/shared/constants"
	"github.com/atelier-community/atelier/internal/shared/logger"
	"github.com/atelier-community/atelier/internal/shared/utils"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setViewer(c, claims.Viewer())
		c.Next()
	}
}

// OptionalAuth attaches the viewer when a valid token is present. Requests
// without one, or with an invalid one, continue as guests.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			c.Next()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Debugw("ignoring invalid optional token", "error", err)
		} else {
			setViewer(c, claims.Viewer())
		}

		c.Next()
	}
}

// ViewerFrom returns the authenticated viewer, nil for guests.
func ViewerFrom(c *gin.Context) *work.Viewer {
	v, exists := c.Get(constants.ContextKeyViewer)
	if !exists {
		return nil
	}
	viewer, _ := v.(*work.Viewer)
	return viewer
}

func setViewer(c *gin.Context, viewer *work.Viewer) {
	c.Set(constants.ContextKeyViewer, viewer)
	c.Set(constants.ContextKeyUserID, viewer.ID)
	c.Set(authorization.ContextKeyUserRole, viewer.Role.String())
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
