package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/repository"
)

// Respaldo handles GET /api/respaldo - a full export of the three
// collections for offline backup. The snapshot is only "reasonably recent":
// the collections are read one after another without a transaction.
func Respaldo(c *gin.Context) {
	store := repository.GetStore()

	pedidos, err := store.ListPedidos()
	if err != nil {
		zap.S().Errorw("respaldo failed reading pedidos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar respaldo"})
		return
	}
	usuarios, err := store.ListUsuarios()
	if err != nil {
		zap.S().Errorw("respaldo failed reading usuarios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar respaldo"})
		return
	}
	imagenes, err := store.ListImagenes()
	if err != nil {
		zap.S().Errorw("respaldo failed reading imagenes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar respaldo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pedidos":    pedidos,
		"usuarios":   usuarios,
		"imagenes":   imagenes,
		"generadoEn": time.Now().UTC(),
	})
}
