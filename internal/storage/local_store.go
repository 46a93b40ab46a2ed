package storage

import (
	"sync"

	"github.com/shivangi00/e-business-card-generator/internal/models"
)

// DraftStore mirrors the in-progress profile to disk under a fixed key so an
// unpublished edit survives a restart. It is a recovery aid, not authoritative:
// callers treat every failure as best-effort.
type DraftStore struct {
	store *JSONStore
}

const draftFilename = "ecard-profile.json"

func NewDraftStore(dataDir string) (*DraftStore, error) {
	js, err := NewJSONStore(dataDir, draftFilename)
	if err != nil {
		return nil, err
	}
	return &DraftStore{store: js}, nil
}

// NewOwnerDraftStore scopes the draft file to one identity so concurrent
// sessions never clobber each other's drafts. An empty ownerID falls back to
// the shared anonymous draft key.
func NewOwnerDraftStore(dataDir, ownerID string) (*DraftStore, error) {
	if ownerID == "" {
		return NewDraftStore(dataDir)
	}
	js, err := NewJSONStore(dataDir, "ecard-profile-"+sanitizeKey(ownerID)+".json")
	if err != nil {
		return nil, err
	}
	return &DraftStore{store: js}, nil
}

// sanitizeKey keeps owner-derived filenames safe on every filesystem.
func sanitizeKey(s string) string {
	out := []byte(s)
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

func (s *DraftStore) Save(p models.Profile) error {
	return s.store.Save(p)
}

// Load returns nil without error when no draft exists.
func (s *DraftStore) Load() (*models.Profile, error) {
	if !s.store.Exists() {
		return nil, nil
	}
	var p models.Profile
	if err := s.store.Load(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DraftStore) Clear() error {
	return s.store.Delete()
}

// PointerStore keeps the per-identity "my card" pointers (ownerID -> cardID).
// Pointers are scoped by identity so switching accounts never leaks another
// identity's card id.
type PointerStore struct {
	mu       sync.Mutex
	store    *JSONStore
	pointers map[string]string
}

const pointersFilename = "card-pointers.json"

func NewPointerStore(dataDir string) (*PointerStore, error) {
	js, err := NewJSONStore(dataDir, pointersFilename)
	if err != nil {
		return nil, err
	}
	p := &PointerStore{store: js, pointers: make(map[string]string)}
	if js.Exists() {
		if err := js.Load(&p.pointers); err != nil {
			// Corrupt pointer file: start empty, the session recovers via
			// a list-by-owner lookup.
			p.pointers = make(map[string]string)
		}
	}
	return p, nil
}

func (s *PointerStore) Get(ownerID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.pointers[ownerID]
	return id, ok
}

func (s *PointerStore) Set(ownerID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointers[ownerID] = cardID
	return s.store.Save(s.pointers)
}

func (s *PointerStore) Clear(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pointers, ownerID)
	return s.store.Save(s.pointers)
}
