package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bonaparte-uniformes/bonaparte-api/repository"
	"github.com/bonaparte-uniformes/bonaparte-api/utils"
)

func TestAttachFirstImageBecomesCover(t *testing.T) {
	store := newTestStore(t)
	storage := NewMockStorage()
	pedidoSvc := NewPedidoService(store, storage, "BONA")
	imagenSvc := NewImagenService(store, storage, 10*1024*1024)

	pedido, err := pedidoSvc.Create(PedidoCreate{ClienteNombre: "Ana"})
	assert.NoError(t, err)
	assert.Empty(t, pedido.ImagenURL)
	beforeAttach := pedido.ActualizadoEn

	first, err := imagenSvc.Attach(pedido.ID, []byte("img-1"), "image/jpeg", "frente.jpg")
	assert.NoError(t, err)
	assert.Equal(t, pedido.ID, first.PedidoID)
	assert.NotEmpty(t, first.ImagenURL)

	stored, err := store.GetPedido(pedido.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ImagenURL, stored.ImagenURL, "first image becomes the cover")
	assert.True(t, stored.ActualizadoEn.After(beforeAttach) || stored.ActualizadoEn.Equal(beforeAttach))

	second, err := imagenSvc.Attach(pedido.ID, []byte("img-2"), "image/jpeg", "espalda.jpg")
	assert.NoError(t, err)
	assert.NotEqual(t, first.ImagenURL, second.ImagenURL)

	stored, err = store.GetPedido(pedido.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ImagenURL, stored.ImagenURL, "later images never replace the cover")
}

func TestAttachUnknownPedido(t *testing.T) {
	store := newTestStore(t)
	storage := NewMockStorage()
	imagenSvc := NewImagenService(store, storage, 10*1024*1024)

	_, err := imagenSvc.Attach(42, []byte("img"), "image/jpeg", "foto.jpg")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, storage.FileCount(), "nothing is written for an unknown pedido")
}

func TestAttachOversizedRejectedBeforeWrite(t *testing.T) {
	store := newTestStore(t)
	storage := NewMockStorage()
	pedidoSvc := NewPedidoService(store, storage, "BONA")
	imagenSvc := NewImagenService(store, storage, 8) // 8-byte limit

	pedido, err := pedidoSvc.Create(PedidoCreate{})
	assert.NoError(t, err)

	_, err = imagenSvc.Attach(pedido.ID, []byte("way too many bytes"), "image/jpeg", "foto.jpg")
	var uploadErr *utils.FileUploadError
	assert.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "FILE_TOO_LARGE", uploadErr.Code)
	assert.Equal(t, 0, storage.FileCount(), "rejected before any storage write")

	imagenes, listErr := imagenSvc.ListByPedido(pedido.ID)
	assert.NoError(t, listErr)
	assert.Empty(t, imagenes)
}

func TestAttachStorageFailureLeavesNoRow(t *testing.T) {
	store := newTestStore(t)
	storage := NewMockStorage()
	storage.FailSave = true
	pedidoSvc := NewPedidoService(store, NewMockStorage(), "BONA")
	imagenSvc := NewImagenService(store, storage, 10*1024*1024)

	pedido, err := pedidoSvc.Create(PedidoCreate{})
	assert.NoError(t, err)

	_, err = imagenSvc.Attach(pedido.ID, []byte("img"), "image/jpeg", "foto.jpg")
	assert.Error(t, err)

	imagenes, listErr := imagenSvc.ListByPedido(pedido.ID)
	assert.NoError(t, listErr)
	assert.Empty(t, imagenes, "a failed upload records nothing")
}

func TestAttachKeepsOriginalExtension(t *testing.T) {
	store := newTestStore(t)
	storage := NewMockStorage()
	pedidoSvc := NewPedidoService(store, storage, "BONA")
	imagenSvc := NewImagenService(store, storage, 10*1024*1024)

	pedido, err := pedidoSvc.Create(PedidoCreate{})
	assert.NoError(t, err)

	withExt, err := imagenSvc.Attach(pedido.ID, []byte("img"), "image/png", "modelo.PNG")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(withExt.ImagenURL, ".png"))

	withoutExt, err := imagenSvc.Attach(pedido.ID, []byte("img"), "image/jpeg", "modelo")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(withoutExt.ImagenURL, ".jpg"), "missing extension defaults to .jpg")
}
