package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
	"github.com/bonaparte-uniformes/bonaparte-api/repository"
	"github.com/bonaparte-uniformes/bonaparte-api/utils"
)

// ImagenService attaches uploaded images to pedidos
type ImagenService struct {
	store    repository.Store
	storage  FileStorage
	maxBytes int64
}

// NewImagenService creates an imagen service over the given collaborators
func NewImagenService(store repository.Store, storage FileStorage, maxBytes int64) *ImagenService {
	return &ImagenService{
		store:    store,
		storage:  storage,
		maxBytes: maxBytes,
	}
}

// ListByPedido returns the pedido's images in upload order. A pedido without
// images (or an unknown id) yields an empty list, matching the listing
// contract after a cascade delete.
func (s *ImagenService) ListByPedido(pedidoID uint) ([]models.Imagen, error) {
	return s.store.ListImagenesByPedido(pedidoID)
}

// Attach stores the file, records the imagen row and applies the cover-image
// policy: the first image a pedido receives becomes its cover, later uploads
// never replace an existing one.
func (s *ImagenService) Attach(pedidoID uint, data []byte, contentType, originalFilename string) (*models.Imagen, error) {
	pedido, err := s.store.GetPedido(pedidoID)
	if err != nil {
		return nil, err
	}

	// Size bound is enforced before any storage write.
	if err := utils.ValidateUploadSize(int64(len(data)), s.maxBytes); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := utils.StorageKey(pedidoID, originalFilename, now)

	url, err := s.storage.Save(key, data, contentType)
	if err != nil {
		return nil, err
	}

	imagen := &models.Imagen{
		PedidoID:  pedidoID,
		ImagenURL: url,
		CreadoEn:  now,
	}
	if err := s.store.CreateImagen(imagen); err != nil {
		// Keep storage consistent with the table when the insert fails.
		if cleanupErr := s.storage.Delete(url); cleanupErr != nil {
			zap.S().Warnw("orphaned upload could not be removed", "url", url, "error", cleanupErr)
		}
		return nil, err
	}

	if pedido.ImagenURL == "" {
		pedido.ImagenURL = url
		pedido.ActualizadoEn = now
		if err := s.store.UpdatePedido(pedido); err != nil {
			// The imagen row exists either way; a pedido without a cover is a
			// tolerable degraded state, not a failed upload.
			zap.S().Warnw("failed to set cover image", "pedidoId", pedidoID, "error", err)
		}
	}

	return imagen, nil
}

var imagenServiceInstance *ImagenService

// InitImagenService sets the process-wide imagen service
func InitImagenService(service *ImagenService) *ImagenService {
	imagenServiceInstance = service
	return imagenServiceInstance
}

// GetImagenService returns the initialized imagen service
func GetImagenService() *ImagenService {
	return imagenServiceInstance
}

// SetImagenService sets the imagen service (primarily for testing)
func SetImagenService(service *ImagenService) {
	imagenServiceInstance = service
}
