package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
)

// Sesion is the identity bound to a bearer token when it was issued. The
// values are copied from the usuario at login time; later role changes do
// not propagate to tokens that are already out.
type Sesion struct {
	UserID uint
	Nombre string
	Rol    string
}

// IsAdmin reports whether the session belongs to an admin operator
func (s Sesion) IsAdmin() bool {
	return s.Rol == "admin"
}

// SessionStore maps opaque bearer tokens to active sessions. Sessions are
// process-local and lost on restart.
type SessionStore interface {
	// Create issues a new token for the usuario and records the session.
	Create(usuario models.Usuario) string

	// Get returns the session behind a token, if it is still active.
	Get(token string) (Sesion, bool)

	// Delete revokes a single token.
	Delete(token string)

	// Clear drops every active session. Called at shutdown.
	Clear()
}

type sesionEntry struct {
	sesion    Sesion
	expiresAt time.Time // zero means no expiry
}

// MemorySessionStore is the in-memory SessionStore implementation. A TTL of
// 0 keeps tokens valid for the life of the process.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sesiones map[string]sesionEntry
}

// NewMemorySessionStore creates an in-memory session store
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sesiones: make(map[string]sesionEntry),
	}
}

func (s *MemorySessionStore) Create(usuario models.Usuario) string {
	token := uuid.NewString()
	entry := sesionEntry{
		sesion: Sesion{
			UserID: usuario.ID,
			Nombre: usuario.Nombre,
			Rol:    usuario.Rol,
		},
	}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sesiones[token] = entry
	s.mu.Unlock()
	return token
}

func (s *MemorySessionStore) Get(token string) (Sesion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sesiones[token]
	if !ok {
		return Sesion{}, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.sesiones, token)
		return Sesion{}, false
	}
	return entry.sesion, true
}

func (s *MemorySessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sesiones, token)
	s.mu.Unlock()
}

func (s *MemorySessionStore) Clear() {
	s.mu.Lock()
	s.sesiones = make(map[string]sesionEntry)
	s.mu.Unlock()
}

var sessionStoreInstance SessionStore

// InitSessionStore sets the process-wide session store
func InitSessionStore(store SessionStore) SessionStore {
	sessionStoreInstance = store
	return sessionStoreInstance
}

// GetSessionStore returns the initialized session store
func GetSessionStore() SessionStore {
	return sessionStoreInstance
}

// SetSessionStore sets the session store (primarily for testing)
func SetSessionStore(store SessionStore) {
	sessionStoreInstance = store
}
