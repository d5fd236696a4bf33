package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	// browsers cannot set headers on a WebSocket handshake
	tokenQueryParam = "access_token"

	errMissingAuth   = "missing Authorization header"
	errBadAuthFormat = "invalid Authorization header format"
	errBadToken      = "invalid or expired token"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func (h *Handler) userIdMiddleware(c *gin.Context) {
	h.authenticate(c, "")
}

// wsAuthMiddleware also accepts the token as ?access_token=.
func (h *Handler) wsAuthMiddleware(c *gin.Context) {
	h.authenticate(c, c.Query(tokenQueryParam))
}

func (h *Handler) authenticate(c *gin.Context, queryToken string) {
	token := queryToken
	if token == "" {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuth})
			return
		}
		var ok bool
		if token, ok = bearerToken(header); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadAuthFormat})
			return
		}
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadToken})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userID)
	c.Next()
}
