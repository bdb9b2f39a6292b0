package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
	"github.com/bonaparte-uniformes/bonaparte-api/repository"
)

// CreateUserRequest represents the request body for creating a usuario
type CreateUserRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Rol      string `json:"rol" binding:"omitempty,oneof=admin operador"`
}

// ListUsers handles GET /api/users - all usuarios, passwords omitted
func ListUsers(c *gin.Context) {
	usuarios, err := repository.GetStore().ListUsuarios()
	if err != nil {
		zap.S().Errorw("failed to list usuarios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener usuarios"})
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

// CreateUser handles POST /api/users - creates an operator account. A
// duplicate email is rejected before the insert.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	store := repository.GetStore()
	exists, err := store.EmailExists(req.Email)
	if err != nil {
		zap.S().Errorw("failed to check email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear usuario"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El email ya está registrado"})
		return
	}

	rol := req.Rol
	if rol == "" {
		rol = "operador"
	}

	usuario := models.Usuario{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
		Rol:      rol,
	}
	if err := store.CreateUsuario(&usuario); err != nil {
		zap.S().Errorw("failed to create usuario", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear usuario"})
		return
	}

	c.JSON(http.StatusCreated, usuario)
}

// DeleteUser handles DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := repository.GetStore().DeleteUsuario(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		zap.S().Errorw("failed to delete usuario", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar usuario"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
