package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultImageExt is used when the uploaded filename carries no extension
const DefaultImageExt = ".jpg"

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateUploadSize rejects oversized uploads before anything is written to
// storage.
func ValidateUploadSize(size, maxBytes int64) error {
	if size > maxBytes {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("El archivo excede el límite de %d MB", maxBytes/(1024*1024)),
		}
	}
	return nil
}

// StorageKey generates a unique storage key for a pedido image, keeping the
// original extension. Format: pedidos/{pedidoID}/{unixMillis}_{random}{ext}
func StorageKey(pedidoID uint, originalFilename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalFilename)))
	if ext == "" {
		ext = DefaultImageExt
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("pedidos/%d/%d_%s%s", pedidoID, now.UnixMilli(), random, ext)
}
