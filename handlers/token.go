package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodshare/foodshare/internal/tokens"
	"github.com/foodshare/foodshare/pkg/logger"
)

// TokenHandler issues bearer tokens for a caller-asserted email. The token is
// the identity itself; there are no user records behind it.
type TokenHandler struct {
	svc *tokens.Service
}

func NewTokenHandler(svc *tokens.Service) *TokenHandler {
	return &TokenHandler{svc: svc}
}

func (h *TokenHandler) Register(r *gin.Engine) {
	r.POST("/jwt", h.Issue)
}

func (h *TokenHandler) Issue(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tok, err := h.svc.Issue(req.Email)
	if err != nil {
		if errors.Is(err, tokens.ErrEmailRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		logger.Errorf("token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}
