package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bonaparte-uniformes/bonaparte-api/repository"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match an existing usuario.
var ErrInvalidCredentials = errors.New("credenciales incorrectas")

// CredentialComparer abstracts how a supplied password is checked against
// the stored credential, so the comparison can be hardened without touching
// the login flow.
type CredentialComparer interface {
	Compare(stored, supplied string) bool
}

// PlaintextComparer matches the legacy deployments: stored passwords are
// compared byte for byte. Known weakness, kept behind this seam.
type PlaintextComparer struct{}

func (PlaintextComparer) Compare(stored, supplied string) bool {
	return stored == supplied
}

// BcryptComparer treats the stored credential as a bcrypt hash. Available
// for deployments that have migrated their usuario rows.
type BcryptComparer struct{}

func (BcryptComparer) Compare(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// AuthService issues sessions for valid credentials
type AuthService struct {
	store    repository.Store
	sessions SessionStore
	comparer CredentialComparer
}

// NewAuthService creates an auth service over the given collaborators
func NewAuthService(store repository.Store, sessions SessionStore, comparer CredentialComparer) *AuthService {
	return &AuthService{
		store:    store,
		sessions: sessions,
		comparer: comparer,
	}
}

// Login validates the credentials and issues a bearer token bound to the
// usuario's identity and role.
func (s *AuthService) Login(email, password string) (string, Sesion, error) {
	usuario, err := s.store.FindUsuarioByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", Sesion{}, ErrInvalidCredentials
		}
		return "", Sesion{}, fmt.Errorf("failed to look up usuario: %w", err)
	}

	if !s.comparer.Compare(usuario.Password, password) {
		return "", Sesion{}, ErrInvalidCredentials
	}

	token := s.sessions.Create(*usuario)
	sesion, _ := s.sessions.Get(token)
	return token, sesion, nil
}

var authServiceInstance *AuthService

// InitAuthService sets the process-wide auth service
func InitAuthService(service *AuthService) *AuthService {
	authServiceInstance = service
	return authServiceInstance
}

// GetAuthService returns the initialized auth service
func GetAuthService() *AuthService {
	return authServiceInstance
}

// SetAuthService sets the auth service (primarily for testing)
func SetAuthService(service *AuthService) {
	authServiceInstance = service
}
