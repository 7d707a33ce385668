package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request records that a user asked for an item. UserEmail identifies the
// requester and is the only validated field; descriptive fields (typically a
// reference to the requested listing) travel in Extra.
type Request struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty"`
	UserEmail string                 `bson:"userEmail"`
	CreatedAt time.Time              `bson:"createdAt,omitempty"`
	Extra     map[string]interface{} `bson:",inline"`
}

var requestFields = map[string]bool{
	"id": true, "userEmail": true, "createdAt": true,
}

func (r Request) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+3)
	for k, v := range r.Extra {
		out[k] = v
	}
	if !r.ID.IsZero() {
		out["id"] = r.ID.Hex()
	}
	out["userEmail"] = r.UserEmail
	if !r.CreatedAt.IsZero() {
		out["createdAt"] = r.CreatedAt
	}
	return json.Marshal(out)
}

func (r *Request) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		var hex string
		if err := json.Unmarshal(v, &hex); err == nil && hex != "" {
			if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
				r.ID = oid
			}
		}
	}
	if v, ok := raw["userEmail"]; ok {
		_ = json.Unmarshal(v, &r.UserEmail)
	}
	if v, ok := raw["createdAt"]; ok {
		_ = json.Unmarshal(v, &r.CreatedAt)
	}
	r.Extra = nil
	for k, v := range raw {
		if requestFields[k] {
			continue
		}
		var val interface{}
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if r.Extra == nil {
			r.Extra = map[string]interface{}{}
		}
		r.Extra[k] = val
	}
	return nil
}
