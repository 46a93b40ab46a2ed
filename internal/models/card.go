package models

import (
	"math/rand"
	"strconv"
	"time"
)

// Card is the persisted, publicly loadable snapshot of a Profile.
type Card struct {
	CardID  string  `json:"card_id" bson:"_id"`
	OwnerID string  `json:"owner_id" bson:"owner_id,omitempty"` // empty only for legacy pre-auth documents
	Profile Profile `json:"profile" bson:"profile"`
	// Timestamps are server-assigned, never the client clock.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

const cardIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewCardID generates an opaque, URL-safe card identifier: nine random base36
// characters plus the current unix-millis in base36. Collision-resistant but
// deliberately not cryptographic; ids are only re-derived on explicit new-card
// creation.
func NewCardID() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = cardIDAlphabet[rand.Intn(len(cardIDAlphabet))]
	}
	return string(b) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

// PublishResponse reports the outcome of a publish.
type PublishResponse struct {
	CardID  string `json:"card_id"`
	URL     string `json:"url"`
	Created bool   `json:"created"`
}

// LogoLookupResponse carries an auto-resolved company logo, if any.
type LogoLookupResponse struct {
	Company string `json:"company"`
	LogoURL string `json:"logo_url,omitempty"`
	Found   bool   `json:"found"`
}
