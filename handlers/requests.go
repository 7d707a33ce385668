package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodshare/foodshare/internal/models"
	"github.com/foodshare/foodshare/internal/requests"
	"github.com/foodshare/foodshare/pkg/logger"
	"github.com/foodshare/foodshare/pkg/middleware"
)

// RequestHandler exposes the /requests routes. Every route requires a valid
// bearer token; the listing routes additionally enforce that a caller can
// only read requests for the identity their own token proves.
type RequestHandler struct {
	svc *requests.Service
}

func NewRequestHandler(svc *requests.Service) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) Register(r *gin.Engine, guard gin.HandlerFunc) {
	r.POST("/requests", guard, h.Create)
	r.GET("/requests", guard, h.ListForEmail)
	r.GET("/my-requests", guard, h.ListMine)
	// token required, but no role claim exists to check against
	r.GET("/all-requests", guard, h.ListAll)
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req models.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, requests.ErrUserEmailRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userEmail is required"})
			return
		}
		logger.Errorf("request insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"acknowledged": true, "insertedId": id.Hex()})
}

// ListForEmail serves GET /requests?email=. The query email must equal the
// guard-verified identity; anything else is forbidden no matter what exists
// for that email. An omitted query defaults to the verified identity.
func (h *RequestHandler) ListForEmail(c *gin.Context) {
	verified := c.GetString(middleware.EmailKey)
	email := c.Query("email")
	if email == "" {
		email = verified
	}
	if email != verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	h.respondList(c, email)
}

// ListMine serves GET /my-requests using the verified identity directly.
func (h *RequestHandler) ListMine(c *gin.Context) {
	h.respondList(c, c.GetString(middleware.EmailKey))
}

func (h *RequestHandler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		logger.Errorf("request query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RequestHandler) respondList(c *gin.Context, email string) {
	items, err := h.svc.ListByRequester(c.Request.Context(), email)
	if err != nil {
		logger.Errorf("request query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, items)
}
