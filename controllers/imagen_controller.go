package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/config"
	"github.com/bonaparte-uniformes/bonaparte-api/models"
	"github.com/bonaparte-uniformes/bonaparte-api/repository"
	"github.com/bonaparte-uniformes/bonaparte-api/services"
	"github.com/bonaparte-uniformes/bonaparte-api/utils"
)

// UploadImagen handles POST /api/pedidos/:id/imagen - multipart upload of a
// reference image. The first image a pedido receives becomes its cover.
func UploadImagen(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se recibió imagen"})
		return
	}

	// Reject oversized uploads before reading the file into memory.
	if err := utils.ValidateUploadSize(fileHeader.Size, config.GetConfig().MaxUploadBytes()); err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		zap.S().Errorw("failed to open upload", "pedidoId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al subir imagen"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		zap.S().Errorw("failed to read upload", "pedidoId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al subir imagen"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	imagen, err := services.GetImagenService().Attach(id, data, contentType, fileHeader.Filename)
	if err != nil {
		var uploadErr *utils.FileUploadError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
		case errors.As(err, &uploadErr):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": uploadErr.Message})
		default:
			zap.S().Errorw("failed to attach imagen", "pedidoId", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al subir imagen"})
		}
		return
	}

	c.JSON(http.StatusCreated, imagen)
}

// ListImagenes handles GET /api/pedidos/:id/imagenes - the pedido's images
// in upload order. A pedido without images yields an empty array.
func ListImagenes(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	imagenes, err := services.GetImagenService().ListByPedido(id)
	if err != nil {
		zap.S().Errorw("failed to list imagenes", "pedidoId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener imágenes"})
		return
	}
	if imagenes == nil {
		imagenes = []models.Imagen{}
	}
	c.JSON(http.StatusOK, imagenes)
}
