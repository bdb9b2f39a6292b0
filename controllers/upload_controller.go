package controllers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bonaparte-uniformes/bonaparte-api/services"
)

// GetUploadedImage handles GET /api/uploads/*filepath - serves files saved
// by the local storage backend. Only mounted when STORAGE_BACKEND=local;
// the S3 backend hands out bucket URLs instead.
func GetUploadedImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("filepath"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo requerido"})
		return
	}

	local, ok := services.GetStorage().(*services.LocalStorage)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Imagen no encontrada"})
		return
	}

	// ResolveLocalPath rejects directory traversal.
	fullPath, err := local.ResolveLocalPath(key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ruta inválida"})
		return
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Imagen no encontrada"})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(fullPath)
}
