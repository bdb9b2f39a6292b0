package repository

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	os.Exit(m.Run())
}

func setupStore(t *testing.T) *GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Pedido{}, &models.Imagen{}, &models.Usuario{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return NewGormStore(db)
}

func TestListPedidosNewestFirst(t *testing.T) {
	store := setupStore(t)

	for _, folio := range []string{"BONA-2025-0001", "BONA-2025-0002", "BONA-2025-0003"} {
		err := store.CreatePedido(&models.Pedido{Folio: folio})
		assert.NoError(t, err)
	}

	pedidos, err := store.ListPedidos()
	assert.NoError(t, err)
	assert.Len(t, pedidos, 3)
	assert.Equal(t, "BONA-2025-0003", pedidos[0].Folio)
	assert.Equal(t, "BONA-2025-0001", pedidos[2].Folio)
}

func TestGetPedidoNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetPedido(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePedidoPersistsZeroValues(t *testing.T) {
	store := setupStore(t)

	pedido := &models.Pedido{Folio: "BONA-2025-0001", Estado: "nuevo", Anticipo: 100}
	assert.NoError(t, store.CreatePedido(pedido))

	// Zeroing a numeric field must actually land in the row.
	pedido.Anticipo = 0
	pedido.Estado = ""
	assert.NoError(t, store.UpdatePedido(pedido))

	stored, err := store.GetPedido(pedido.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, stored.Anticipo)
	assert.Equal(t, "", stored.Estado)
}

func TestDeletePedidoNotFound(t *testing.T) {
	store := setupStore(t)

	err := store.DeletePedido(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastFolio(t *testing.T) {
	store := setupStore(t)

	last, err := store.LastFolio("BONA-2025-")
	assert.NoError(t, err)
	assert.Equal(t, "", last, "empty collection has no last folio")

	for _, folio := range []string{"BONA-2024-0009", "BONA-2025-0001", "BONA-2025-0012"} {
		assert.NoError(t, store.CreatePedido(&models.Pedido{Folio: folio}))
	}

	last, err = store.LastFolio("BONA-2025-")
	assert.NoError(t, err)
	assert.Equal(t, "BONA-2025-0012", last)

	last, err = store.LastFolio("BONA-2024-")
	assert.NoError(t, err)
	assert.Equal(t, "BONA-2024-0009", last)
}

func TestImagenesByPedido(t *testing.T) {
	store := setupStore(t)

	pedido := &models.Pedido{Folio: "BONA-2025-0001"}
	assert.NoError(t, store.CreatePedido(pedido))
	otro := &models.Pedido{Folio: "BONA-2025-0002"}
	assert.NoError(t, store.CreatePedido(otro))

	assert.NoError(t, store.CreateImagen(&models.Imagen{PedidoID: pedido.ID, ImagenURL: "a.jpg"}))
	assert.NoError(t, store.CreateImagen(&models.Imagen{PedidoID: pedido.ID, ImagenURL: "b.jpg"}))
	assert.NoError(t, store.CreateImagen(&models.Imagen{PedidoID: otro.ID, ImagenURL: "c.jpg"}))

	imagenes, err := store.ListImagenesByPedido(pedido.ID)
	assert.NoError(t, err)
	assert.Len(t, imagenes, 2)
	assert.Equal(t, "a.jpg", imagenes[0].ImagenURL, "upload order is preserved")

	removed, err := store.DeleteImagenesByPedido(pedido.ID)
	assert.NoError(t, err)
	assert.Len(t, removed, 2)

	imagenes, err = store.ListImagenesByPedido(pedido.ID)
	assert.NoError(t, err)
	assert.Empty(t, imagenes)

	// The other pedido's imagenes are untouched.
	imagenes, err = store.ListImagenesByPedido(otro.ID)
	assert.NoError(t, err)
	assert.Len(t, imagenes, 1)
}

func TestDeleteImagenesByPedidoEmpty(t *testing.T) {
	store := setupStore(t)

	removed, err := store.DeleteImagenesByPedido(7)
	assert.NoError(t, err)
	assert.Empty(t, removed)
}

func TestUsuarioEmailHelpers(t *testing.T) {
	store := setupStore(t)

	exists, err := store.EmailExists("laura@bonaparte.mx")
	assert.NoError(t, err)
	assert.False(t, exists)

	usuario := &models.Usuario{Nombre: "Laura", Email: "laura@bonaparte.mx", Password: "secreta", Rol: "admin"}
	assert.NoError(t, store.CreateUsuario(usuario))

	exists, err = store.EmailExists("laura@bonaparte.mx")
	assert.NoError(t, err)
	assert.True(t, exists)

	found, err := store.FindUsuarioByEmail("laura@bonaparte.mx")
	assert.NoError(t, err)
	assert.Equal(t, usuario.ID, found.ID)

	_, err = store.FindUsuarioByEmail("nadie@bonaparte.mx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUsuario(t *testing.T) {
	store := setupStore(t)

	usuario := &models.Usuario{Nombre: "Laura", Email: "laura@bonaparte.mx", Password: "x", Rol: "operador"}
	assert.NoError(t, store.CreateUsuario(usuario))

	assert.NoError(t, store.DeleteUsuario(usuario.ID))
	assert.ErrorIs(t, store.DeleteUsuario(usuario.ID), ErrNotFound)
}
