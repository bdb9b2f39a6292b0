package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
)

// GormStore implements Store on top of gorm, covering both the postgres and
// the SQLite backend variants with the same code.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListPedidos() ([]models.Pedido, error) {
	var pedidos []models.Pedido
	if err := s.db.Order("id DESC").Find(&pedidos).Error; err != nil {
		return nil, fmt.Errorf("failed to list pedidos: %w", err)
	}
	return pedidos, nil
}

func (s *GormStore) GetPedido(id uint) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := s.db.First(&pedido, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pedido %d: %w", id, err)
	}
	return &pedido, nil
}

func (s *GormStore) CreatePedido(pedido *models.Pedido) error {
	if err := s.db.Create(pedido).Error; err != nil {
		return fmt.Errorf("failed to create pedido: %w", err)
	}
	return nil
}

func (s *GormStore) UpdatePedido(pedido *models.Pedido) error {
	// Save writes the whole row; the merge engine has already computed it.
	result := s.db.Save(pedido)
	if result.Error != nil {
		return fmt.Errorf("failed to update pedido %d: %w", pedido.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeletePedido(id uint) error {
	result := s.db.Delete(&models.Pedido{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pedido %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) LastFolio(prefix string) (string, error) {
	var pedido models.Pedido
	err := s.db.Where("folio LIKE ?", prefix+"%").Order("folio DESC").First(&pedido).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up last folio: %w", err)
	}
	return pedido.Folio, nil
}

func (s *GormStore) ListImagenes() ([]models.Imagen, error) {
	var imagenes []models.Imagen
	if err := s.db.Order("id ASC").Find(&imagenes).Error; err != nil {
		return nil, fmt.Errorf("failed to list imagenes: %w", err)
	}
	return imagenes, nil
}

func (s *GormStore) ListImagenesByPedido(pedidoID uint) ([]models.Imagen, error) {
	var imagenes []models.Imagen
	if err := s.db.Where("pedido_id = ?", pedidoID).Order("id ASC").Find(&imagenes).Error; err != nil {
		return nil, fmt.Errorf("failed to list imagenes for pedido %d: %w", pedidoID, err)
	}
	return imagenes, nil
}

func (s *GormStore) CreateImagen(imagen *models.Imagen) error {
	if err := s.db.Create(imagen).Error; err != nil {
		return fmt.Errorf("failed to create imagen: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteImagenesByPedido(pedidoID uint) ([]models.Imagen, error) {
	imagenes, err := s.ListImagenesByPedido(pedidoID)
	if err != nil {
		return nil, err
	}
	if len(imagenes) == 0 {
		return nil, nil
	}
	if err := s.db.Where("pedido_id = ?", pedidoID).Delete(&models.Imagen{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete imagenes for pedido %d: %w", pedidoID, err)
	}
	return imagenes, nil
}

func (s *GormStore) ListUsuarios() ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := s.db.Order("id ASC").Find(&usuarios).Error; err != nil {
		return nil, fmt.Errorf("failed to list usuarios: %w", err)
	}
	return usuarios, nil
}

func (s *GormStore) GetUsuario(id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := s.db.First(&usuario, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get usuario %d: %w", id, err)
	}
	return &usuario, nil
}

func (s *GormStore) CreateUsuario(usuario *models.Usuario) error {
	if err := s.db.Create(usuario).Error; err != nil {
		return fmt.Errorf("failed to create usuario: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteUsuario(id uint) error {
	result := s.db.Delete(&models.Usuario{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete usuario %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindUsuarioByEmail(email string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := s.db.Where("email = ?", email).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find usuario by email: %w", err)
	}
	return &usuario, nil
}

func (s *GormStore) EmailExists(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Usuario{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}
