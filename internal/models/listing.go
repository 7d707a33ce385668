package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing is a published surplus-food offer. Beyond the ownership and status
// invariants the document is schemaless: whatever else the client sends is
// carried in Extra and persisted as-is (bson inline).
type Listing struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	DonorEmail string                 `bson:"donorEmail"`
	Status     string                 `bson:"status,omitempty"`
	CreatedAt  time.Time              `bson:"createdAt,omitempty"`
	UpdatedAt  time.Time              `bson:"updatedAt,omitempty"`
	Extra      map[string]interface{} `bson:",inline"`
}

// listingFields are the keys owned by the struct itself; everything else in a
// JSON body belongs to Extra.
var listingFields = map[string]bool{
	"id": true, "donorEmail": true, "status": true, "createdAt": true, "updatedAt": true,
}

func (l Listing) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(l.Extra)+5)
	for k, v := range l.Extra {
		out[k] = v
	}
	if !l.ID.IsZero() {
		out["id"] = l.ID.Hex()
	}
	out["donorEmail"] = l.DonorEmail
	if l.Status != "" {
		out["status"] = l.Status
	}
	if !l.CreatedAt.IsZero() {
		out["createdAt"] = l.CreatedAt
	}
	if !l.UpdatedAt.IsZero() {
		out["updatedAt"] = l.UpdatedAt
	}
	return json.Marshal(out)
}

func (l *Listing) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		var hex string
		if err := json.Unmarshal(v, &hex); err == nil && hex != "" {
			if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
				l.ID = oid
			}
		}
	}
	if v, ok := raw["donorEmail"]; ok {
		_ = json.Unmarshal(v, &l.DonorEmail)
	}
	if v, ok := raw["status"]; ok {
		_ = json.Unmarshal(v, &l.Status)
	}
	if v, ok := raw["createdAt"]; ok {
		_ = json.Unmarshal(v, &l.CreatedAt)
	}
	if v, ok := raw["updatedAt"]; ok {
		_ = json.Unmarshal(v, &l.UpdatedAt)
	}
	l.Extra = nil
	for k, v := range raw {
		if listingFields[k] {
			continue
		}
		var val interface{}
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if l.Extra == nil {
			l.Extra = map[string]interface{}{}
		}
		l.Extra[k] = val
	}
	return nil
}
