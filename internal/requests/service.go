package requests

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodshare/foodshare/internal/models"
	"github.com/foodshare/foodshare/internal/store"
)

// ErrUserEmailRequired is returned when a request is created without its
// requester identity.
var ErrUserEmailRequired = errors.New("userEmail is required")

const storeTimeout = 5 * time.Second

// Service owns the food-request business rules over an injected store.
type Service struct {
	store store.Store[models.Request]
}

func NewService(s store.Store[models.Request]) *Service {
	return &Service{store: s}
}

func (s *Service) Create(ctx context.Context, r *models.Request) (primitive.ObjectID, error) {
	if r.UserEmail == "" {
		return primitive.NilObjectID, ErrUserEmailRequired
	}
	r.CreatedAt = time.Now().UTC()
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Insert(ctx, *r)
}

// ListByRequester returns the requests scoped to one requester identity.
func (s *Service) ListByRequester(ctx context.Context, userEmail string) ([]*models.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Find(ctx, bson.M{"userEmail": userEmail})
}

// ListAll returns every request in the collection.
func (s *Service) ListAll(ctx context.Context) ([]*models.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Find(ctx, bson.M{})
}
