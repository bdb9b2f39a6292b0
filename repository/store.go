package repository

import (
	"errors"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
)

// ErrNotFound is returned when a referenced record does not exist. Callers
// translate it to a 404 at the HTTP boundary.
var ErrNotFound = errors.New("record not found")

// Store is the storage-agnostic persistence interface the services depend
// on. Implementations must make every write atomic from the caller's point
// of view: a failed write leaves prior state visible and unchanged.
type Store interface {
	// ListPedidos returns all pedidos, newest first by id.
	ListPedidos() ([]models.Pedido, error)
	GetPedido(id uint) (*models.Pedido, error)
	CreatePedido(pedido *models.Pedido) error
	// UpdatePedido persists the full merged row. Returns ErrNotFound when
	// the pedido no longer exists.
	UpdatePedido(pedido *models.Pedido) error
	DeletePedido(id uint) error
	// LastFolio returns the highest folio starting with prefix, or "" when
	// none exists. Folios are zero-padded, so lexicographic order matches
	// numeric order within a year.
	LastFolio(prefix string) (string, error)

	ListImagenes() ([]models.Imagen, error)
	// ListImagenesByPedido returns the pedido's images in upload order.
	ListImagenesByPedido(pedidoID uint) ([]models.Imagen, error)
	CreateImagen(imagen *models.Imagen) error
	// DeleteImagenesByPedido removes all image rows for a pedido and returns
	// the removed rows so the caller can clean up the stored files.
	DeleteImagenesByPedido(pedidoID uint) ([]models.Imagen, error)

	ListUsuarios() ([]models.Usuario, error)
	GetUsuario(id uint) (*models.Usuario, error)
	CreateUsuario(usuario *models.Usuario) error
	DeleteUsuario(id uint) error
	FindUsuarioByEmail(email string) (*models.Usuario, error)
	EmailExists(email string) (bool, error)
}

var storeInstance Store

// Init sets the process-wide store instance
func Init(store Store) {
	storeInstance = store
}

// GetStore returns the initialized store instance
func GetStore() Store {
	return storeInstance
}

// SetStore sets the store instance (primarily for testing)
func SetStore(store Store) {
	storeInstance = store
}
