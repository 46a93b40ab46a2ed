package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/storage"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

// UserService backfills authentication when the server runs without Firebase
// credentials: local accounts with bcrypt passwords, persisted to the data
// directory.
type UserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User // userID -> user
	byEmail map[string]string       // email -> userID
	disk    *storage.JSONStore
}

func NewUserService(dataDir string) *UserService {
	s := &UserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}

	disk, err := storage.NewJSONStore(dataDir, "users.json")
	if err != nil {
		log.Printf("Warning: user store running without persistence: %v", err)
		return s
	}
	s.disk = disk
	stored := make(map[string]*storedUser)
	if err := disk.Load(&stored); err != nil {
		log.Printf("Warning: failed to load persisted users: %v", err)
		stored = nil
	}
	for id, u := range stored {
		s.users[id] = &models.User{
			ID:           u.ID,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Name:         u.Name,
			CreatedAt:    u.CreatedAt,
		}
		s.byEmail[u.Email] = id
	}
	return s
}

// storedUser is the on-disk form. models.User hides the password hash from
// JSON, so persistence needs its own shape.
type storedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *UserService) persistLocked() {
	if s.disk == nil {
		return
	}
	stored := make(map[string]*storedUser, len(s.users))
	for id, u := range s.users {
		stored[id] = &storedUser{
			ID:           u.ID,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Name:         u.Name,
			CreatedAt:    u.CreatedAt,
		}
	}
	if err := s.disk.Save(stored); err != nil {
		log.Printf("Warning: failed to persist users: %v", err)
	}
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		CreatedAt:    time.Now(),
	}

	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID

	s.persistLocked()
	return user, nil
}

func (s *UserService) Login(req *models.LoginRequest) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[req.Email]
	if !exists {
		return nil, ErrUserNotFound
	}

	user := s.users[userID]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}
