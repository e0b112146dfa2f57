package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const operatorCtxKey = "operatorId"

var (
	errMissingAuthHeader = errors.New("missing Authorization header")
	errBadAuthHeader     = errors.New("invalid Authorization header format")
)

const errTokenRejected = "invalid or expired token"

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errBadAuthHeader
	}
	return token, nil
}

// operatorMiddleware lets the request through only with a valid operator
// token, and stores the operator id under operatorCtxKey.
func (h *Handler) operatorMiddleware(c *gin.Context) {
	token, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	operatorID, err := h.services.Authorization.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Debugw("operator_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenRejected})
		return
	}

	c.Set(operatorCtxKey, operatorID)
	c.Next()
}
