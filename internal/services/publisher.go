package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/storage"
)

var ErrAuthRequired = errors.New("sign-in required to publish")

// PublishState tracks the sync protocol: Unpublished -> Publishing ->
// Published, then Published -> Updating -> Published on every later publish.
type PublishState string

const (
	StateUnpublished PublishState = "unpublished"
	StatePublishing  PublishState = "publishing"
	StatePublished   PublishState = "published"
	StateUpdating    PublishState = "updating"
)

// Publisher decides create-vs-update for one editing session, owns the card
// id lifecycle, and reconciles the local per-identity pointer with remote
// ownership.
type Publisher struct {
	mu       sync.Mutex
	store    CardStore
	pointers *storage.PointerStore
	origin   string

	state  PublishState
	cardID string

	newID func() string
}

func NewPublisher(store CardStore, pointers *storage.PointerStore, origin string) *Publisher {
	return &Publisher{
		store:    store,
		pointers: pointers,
		origin:   origin,
		state:    StateUnpublished,
		newID:    models.NewCardID,
	}
}

func (p *Publisher) State() PublishState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Publisher) CardID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cardID
}

// CardURL builds the shareable URL for a card id. The embed flag adds the
// query parameter the card page honors to suppress chrome.
func (p *Publisher) CardURL(cardID string, embed bool) string {
	u := p.origin + "/card/" + cardID
	if embed {
		u += "?embed=true"
	}
	return u
}

// Adopt marks an already-published card as this session's card, e.g. after
// load-on-start found one via the local pointer or an owner listing.
func (p *Publisher) Adopt(cardID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cardID = cardID
	p.state = StatePublished
}

// Reset drops the known card id, returning to Unpublished. Used when a stale
// pointer turned out not to resolve remotely.
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cardID = ""
	p.state = StateUnpublished
}

// Publish pushes the profile to the card store. First publish creates a card
// under a fresh id; later publishes update in place. Failures restore the
// pre-call state: a transport error is retryable with the same id, and a
// permission rejection keeps both state and pointer for explicit recovery.
func (p *Publisher) Publish(ctx context.Context, profile models.Profile, ownerID string) (*models.PublishResponse, error) {
	if ownerID == "" {
		return nil, ErrAuthRequired
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StatePublished {
		p.state = StateUpdating
		err := p.store.Update(ctx, p.cardID, profile, ownerID)
		p.state = StatePublished
		if err != nil {
			// ErrUnauthorized means the local pointer references someone
			// else's card. Keep the pointer; clearing it silently would
			// orphan the user's own card. Any other error is retryable.
			return nil, err
		}
		return &models.PublishResponse{
			CardID: p.cardID,
			URL:    p.CardURL(p.cardID, false),
		}, nil
	}

	// Reuse the id from a failed earlier attempt so retries target the same
	// document instead of creating a duplicate.
	cardID := p.cardID
	if cardID == "" {
		cardID = p.newID()
		p.cardID = cardID
	}
	p.state = StatePublishing
	err := p.store.Create(ctx, cardID, profile, ownerID)
	if errors.Is(err, ErrCardExists) {
		// The earlier create landed remotely even though its response was
		// lost. Finish by updating in place.
		err = p.store.Update(ctx, cardID, profile, ownerID)
	}
	if err != nil {
		p.state = StateUnpublished
		return nil, err
	}

	p.state = StatePublished
	if p.pointers != nil {
		if perr := p.pointers.Set(ownerID, cardID); perr != nil {
			log.Printf("Warning: failed to persist card pointer for %s: %v", ownerID, perr)
		}
	}
	return &models.PublishResponse{
		CardID:  cardID,
		URL:     p.CardURL(cardID, false),
		Created: true,
	}, nil
}
