package listings

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodshare/foodshare/internal/models"
	"github.com/foodshare/foodshare/internal/store"
)

// ErrDonorEmailRequired is returned when a listing is created without its
// ownership field.
var ErrDonorEmailRequired = errors.New("donorEmail is required")

const storeTimeout = 5 * time.Second

// Service owns the food-listing business rules over an injected store.
// Ownership is advisory here: donorEmail is required at creation but never
// checked against the caller's identity (the route layer decides that).
type Service struct {
	store store.Store[models.Listing]
}

func NewService(s store.Store[models.Listing]) *Service {
	return &Service{store: s}
}

// Create validates the ownership field, stamps timestamps and inserts.
func (s *Service) Create(ctx context.Context, l *models.Listing) (primitive.ObjectID, error) {
	if l.DonorEmail == "" {
		return primitive.NilObjectID, ErrDonorEmailRequired
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Insert(ctx, *l)
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.FindByID(ctx, id)
}

// List returns listings narrowed by the optional exact-match filters. Both
// empty means the whole collection.
func (s *Service) List(ctx context.Context, status, donorEmail string) ([]*models.Listing, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if donorEmail != "" {
		filter["donorEmail"] = donorEmail
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Find(ctx, filter)
}

// Patch merges the given fields into the listing ($set semantics) and returns
// the matched count. Identity and creation-time fields cannot be rewritten.
func (s *Service) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	delete(fields, "_id")
	delete(fields, "id")
	delete(fields, "createdAt")
	fields["updatedAt"] = time.Now().UTC()
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Delete(ctx, id)
}
