package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodshare/foodshare/internal/listings"
	"github.com/foodshare/foodshare/internal/models"
	"github.com/foodshare/foodshare/internal/storage"
	"github.com/foodshare/foodshare/internal/store"
	"github.com/foodshare/foodshare/pkg/logger"
)

// ListingHandler exposes the /foods routes. Reads are public; mutations go
// through the guard, though the token's identity is not matched against
// donorEmail (the source system's permissive ownership model).
type ListingHandler struct {
	svc    *listings.Service
	photos *storage.PhotoStore
}

// NewListingHandler creates the handler. photos may be nil; the photo routes
// are only registered when object storage is configured.
func NewListingHandler(svc *listings.Service, photos *storage.PhotoStore) *ListingHandler {
	return &ListingHandler{svc: svc, photos: photos}
}

func (h *ListingHandler) Register(r *gin.Engine, guard gin.HandlerFunc) {
	r.GET("/foods", h.List)
	r.GET("/foods/:id", h.Get)
	r.POST("/foods", guard, h.Create)
	r.PATCH("/foods/:id", guard, h.Update)
	r.DELETE("/foods/:id", guard, h.Delete)
	if h.photos != nil {
		r.POST("/foods/:id/photo", guard, h.UploadPhoto)
		r.GET("/foods/:id/photo", h.GetPhoto)
	}
}

func (h *ListingHandler) Create(c *gin.Context) {
	var l models.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.Create(c.Request.Context(), &l)
	if err != nil {
		if errors.Is(err, listings.ErrDonorEmailRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "donorEmail is required"})
			return
		}
		logger.Errorf("listing insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"acknowledged": true, "insertedId": id.Hex()})
}

// List supports ?status= and ?email= exact-match filters; email narrows by
// the listing's donor.
func (h *ListingHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("status"), c.Query("email"))
	if err != nil {
		logger.Errorf("listing query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	l, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		logger.Errorf("listing lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *ListingHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields == nil {
		// a JSON "null" body binds to a nil map
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object"})
		return
	}
	matched, err := h.svc.Patch(c.Request.Context(), id, bson.M(fields))
	if err != nil {
		logger.Errorf("listing update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "matchedCount": matched})
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("listing delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": deleted})
}

// UploadPhoto stores a photo for an existing listing in object storage.
func (h *ListingHandler) UploadPhoto(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		logger.Errorf("listing lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo file"})
		return
	}
	defer src.Close()
	contentType := file.Header.Get("Content-Type")
	if err := h.photos.Put(c.Request.Context(), id.Hex(), src, file.Size, contentType); err != nil {
		logger.Errorf("photo upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "photoUrl": "/foods/" + id.Hex() + "/photo"})
}

// GetPhoto redirects to a short-lived presigned URL for the stored photo.
func (h *ListingHandler) GetPhoto(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	url, err := h.photos.PresignedURL(c.Request.Context(), id.Hex(), 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no photo"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
