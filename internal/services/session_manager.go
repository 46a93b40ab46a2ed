package services

import (
	"context"
	"log"
	"sync"

	"github.com/shivangi00/e-business-card-generator/internal/storage"
)

// SessionManager hands out one editing session per identity, creating and
// starting it on first use.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*EditingSession

	store    CardStore
	pointers *storage.PointerStore
	logos    LogoResolver
	dataDir  string
	origin   string
}

func NewSessionManager(store CardStore, pointers *storage.PointerStore, logos LogoResolver, dataDir, origin string) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*EditingSession),
		store:    store,
		pointers: pointers,
		logos:    logos,
		dataDir:  dataDir,
		origin:   origin,
	}
}

// Get returns the session for ownerID, running the load-on-start protocol
// the first time the identity shows up.
func (m *SessionManager) Get(ctx context.Context, ownerID string) *EditingSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[ownerID]; ok {
		return sess
	}

	drafts, err := storage.NewOwnerDraftStore(m.dataDir, ownerID)
	if err != nil {
		log.Printf("Warning: draft store unavailable for user %s: %v", ownerID, err)
		drafts = nil
	}

	sess := NewEditingSession(ownerID, SessionDeps{
		Store:    m.store,
		Drafts:   drafts,
		Pointers: m.pointers,
		Logos:    m.logos,
		Origin:   m.origin,
	})
	sess.Start(ctx)
	m.sessions[ownerID] = sess
	return sess
}

// Drop closes and forgets the session for ownerID.
func (m *SessionManager) Drop(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[ownerID]; ok {
		sess.Close()
		delete(m.sessions, ownerID)
	}
}
