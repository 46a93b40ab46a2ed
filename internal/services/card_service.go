package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/storage"
)

var (
	ErrCardNotFound  = errors.New("card not found")
	ErrCardExists    = errors.New("card id already exists")
	ErrOwnerRequired = errors.New("owner id required for publishing")
	ErrUnauthorized  = errors.New("unauthorized to modify this card")
)

// CardStore is the persistence gateway for published cards. Loads are public;
// writes carry the caller's identity for the ownership check.
type CardStore interface {
	Create(ctx context.Context, cardID string, profile models.Profile, ownerID string) error
	Update(ctx context.Context, cardID string, profile models.Profile, ownerID string) error
	Load(ctx context.Context, cardID string) (*models.Card, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error)
}

// CardService stores published cards in memory, mirrored to a JSON file in
// the data directory. Timestamps come from the service clock, never the
// caller, so createdAt ordering stays monotonic despite client clock skew.
type CardService struct {
	mu    sync.RWMutex
	cards map[string]*models.Card
	disk  *storage.JSONStore
	now   func() time.Time
}

func NewCardService(dataDir string) *CardService {
	s := &CardService{
		cards: make(map[string]*models.Card),
		now:   time.Now,
	}

	disk, err := storage.NewJSONStore(dataDir, "cards.json")
	if err != nil {
		log.Printf("Warning: card store running without persistence: %v", err)
		return s
	}
	s.disk = disk
	if err := disk.Load(&s.cards); err != nil {
		log.Printf("Warning: failed to load persisted cards: %v", err)
		s.cards = make(map[string]*models.Card)
	}
	return s
}

func (s *CardService) Create(ctx context.Context, cardID string, profile models.Profile, ownerID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cards[cardID]; exists {
		return ErrCardExists
	}

	now := s.now()
	s.cards[cardID] = &models.Card{
		CardID:    cardID,
		OwnerID:   ownerID,
		Profile:   profile.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.persistLocked()
	return nil
}

// Update overwrites the profile of an existing card. A card created by a
// different owner is left untouched. Legacy cards without an owner are
// adopted by the updating identity.
func (s *CardService) Update(ctx context.Context, cardID string, profile models.Profile, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, exists := s.cards[cardID]
	if !exists {
		return ErrCardNotFound
	}
	if card.OwnerID != "" && card.OwnerID != ownerID {
		return ErrUnauthorized
	}

	card.Profile = profile.Clone()
	card.OwnerID = ownerID
	card.UpdatedAt = s.now()
	s.persistLocked()
	return nil
}

func (s *CardService) Load(ctx context.Context, cardID string) (*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, exists := s.cards[cardID]
	if !exists {
		return nil, ErrCardNotFound
	}

	out := *card
	out.Profile = card.Profile.Clone()
	return &out, nil
}

// ListByOwner returns the owner's cards newest first. No cards is an empty
// slice, not an error.
func (s *CardService) ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.Card{}
	for _, card := range s.cards {
		if card.OwnerID == ownerID {
			out := *card
			out.Profile = card.Profile.Clone()
			results = append(results, out)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

// persistLocked mirrors the map to disk. Best effort: a write failure must
// not fail the card operation. Caller holds the lock.
func (s *CardService) persistLocked() {
	if s.disk == nil {
		return
	}
	if err := s.disk.Save(s.cards); err != nil {
		log.Printf("Warning: failed to persist cards: %v", err)
	}
}
