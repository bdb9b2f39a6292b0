package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/repository"
	"github.com/bonaparte-uniformes/bonaparte-api/services"
)

// parseIDParam reads the numeric :id route parameter
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Id inválido"})
		return 0, false
	}
	return uint(id), true
}

// ListPedidos handles GET /api/pedidos - all pedidos, newest first
func ListPedidos(c *gin.Context) {
	pedidos, err := services.GetPedidoService().List()
	if err != nil {
		zap.S().Errorw("failed to list pedidos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener pedidos"})
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

// CreatePedido handles POST /api/pedidos - creates a pedido, assigning id
// and folio
func CreatePedido(c *gin.Context) {
	var input services.PedidoCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	pedido, err := services.GetPedidoService().Create(input)
	if err != nil {
		zap.S().Errorw("failed to create pedido", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear pedido"})
		return
	}

	c.JSON(http.StatusCreated, pedido)
}

// UpdatePedido handles PUT /api/pedidos/:id - field-level merge update.
// Fields missing from the body keep their stored values; a malformed numeric
// field fails binding and is rejected instead of zeroing stored data.
func UpdatePedido(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var patch services.PedidoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	pedido, err := services.GetPedidoService().Update(id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
			return
		}
		zap.S().Errorw("failed to update pedido", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar pedido"})
		return
	}

	c.JSON(http.StatusOK, pedido)
}

// DeletePedido handles DELETE /api/pedidos/:id - cascade delete of the
// pedido and its imagenes
func DeletePedido(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.GetPedidoService().Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
			return
		}
		zap.S().Errorw("failed to delete pedido", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar pedido"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
