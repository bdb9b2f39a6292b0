package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
	"github.com/bonaparte-uniformes/bonaparte-api/repository"
)

// EstadoNuevo is the workflow state every pedido starts in
const EstadoNuevo = "nuevo"

// MontoFlexible accepts whatever the capture form sends for an amount at
// creation time: a number, a numeric string, or garbage that becomes 0.
// Updates deliberately do NOT use this type; a present-but-invalid amount
// in a patch must fail instead of silently zeroing stored data.
type MontoFlexible float64

func (m *MontoFlexible) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*m = MontoFlexible(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*m = MontoFlexible(f)
			return nil
		}
	}
	*m = 0
	return nil
}

// PedidoCreate is the creation payload. Every field is optional; amounts
// default to 0 and an empty folio means "generate one".
type PedidoCreate struct {
	Folio              string        `json:"folio"`
	ClienteNombre      string        `json:"clienteNombre"`
	ClienteTelefono    string        `json:"clienteTelefono"`
	ClienteEscuela     string        `json:"clienteEscuela"`
	PrendaTipo         string        `json:"prendaTipo"`
	PrendaModelo       string        `json:"prendaModelo"`
	DescripcionGeneral string        `json:"descripcionGeneral"`
	FechaEntrega       string        `json:"fechaEntrega"`
	Estado             string        `json:"estado"`
	TallasTexto        string        `json:"tallasTexto"`
	ComprasNotas       string        `json:"comprasNotas"`
	CorteNotas         string        `json:"corteNotas"`
	ConfeccionNotas    string        `json:"confeccionNotas"`
	PrecioTotal        MontoFlexible `json:"precioTotal"`
	Anticipo           MontoFlexible `json:"anticipo"`
	Saldo              MontoFlexible `json:"saldo"`
	GastosCompras      MontoFlexible `json:"gastosCompras"`
	CondicionesCliente string        `json:"condicionesCliente"`
	ComprasDetalle     string        `json:"comprasDetalle"`
	ImagenURL          string        `json:"imagenUrl"`
}

// PedidoPatch is a field-level overlay for updates: nil leaves the stored
// value untouched, anything else replaces it. Amounts are strict *float64
// so a malformed number is rejected at binding instead of coerced.
type PedidoPatch struct {
	Folio              *string  `json:"folio"`
	ClienteNombre      *string  `json:"clienteNombre"`
	ClienteTelefono    *string  `json:"clienteTelefono"`
	ClienteEscuela     *string  `json:"clienteEscuela"`
	PrendaTipo         *string  `json:"prendaTipo"`
	PrendaModelo       *string  `json:"prendaModelo"`
	DescripcionGeneral *string  `json:"descripcionGeneral"`
	FechaEntrega       *string  `json:"fechaEntrega"`
	Estado             *string  `json:"estado"`
	TallasTexto        *string  `json:"tallasTexto"`
	ComprasNotas       *string  `json:"comprasNotas"`
	CorteNotas         *string  `json:"corteNotas"`
	ConfeccionNotas    *string  `json:"confeccionNotas"`
	PrecioTotal        *float64 `json:"precioTotal"`
	Anticipo           *float64 `json:"anticipo"`
	Saldo              *float64 `json:"saldo"`
	GastosCompras      *float64 `json:"gastosCompras"`
	CondicionesCliente *string  `json:"condicionesCliente"`
	ComprasDetalle     *string  `json:"comprasDetalle"`
	ImagenURL          *string  `json:"imagenUrl"`
}

// MergePedido overlays patch onto previous field by field and stamps
// actualizadoEn. The folio survives any patch that omits it; supplying one
// explicitly is the administrative correction path.
func MergePedido(previous models.Pedido, patch PedidoPatch, now time.Time) models.Pedido {
	merged := previous
	if patch.Folio != nil {
		merged.Folio = *patch.Folio
	}
	if patch.ClienteNombre != nil {
		merged.ClienteNombre = *patch.ClienteNombre
	}
	if patch.ClienteTelefono != nil {
		merged.ClienteTelefono = *patch.ClienteTelefono
	}
	if patch.ClienteEscuela != nil {
		merged.ClienteEscuela = *patch.ClienteEscuela
	}
	if patch.PrendaTipo != nil {
		merged.PrendaTipo = *patch.PrendaTipo
	}
	if patch.PrendaModelo != nil {
		merged.PrendaModelo = *patch.PrendaModelo
	}
	if patch.DescripcionGeneral != nil {
		merged.DescripcionGeneral = *patch.DescripcionGeneral
	}
	if patch.FechaEntrega != nil {
		merged.FechaEntrega = *patch.FechaEntrega
	}
	if patch.Estado != nil {
		merged.Estado = *patch.Estado
	}
	if patch.TallasTexto != nil {
		merged.TallasTexto = *patch.TallasTexto
	}
	if patch.ComprasNotas != nil {
		merged.ComprasNotas = *patch.ComprasNotas
	}
	if patch.CorteNotas != nil {
		merged.CorteNotas = *patch.CorteNotas
	}
	if patch.ConfeccionNotas != nil {
		merged.ConfeccionNotas = *patch.ConfeccionNotas
	}
	if patch.PrecioTotal != nil {
		merged.PrecioTotal = *patch.PrecioTotal
	}
	if patch.Anticipo != nil {
		merged.Anticipo = *patch.Anticipo
	}
	if patch.Saldo != nil {
		merged.Saldo = *patch.Saldo
	}
	if patch.GastosCompras != nil {
		merged.GastosCompras = *patch.GastosCompras
	}
	if patch.CondicionesCliente != nil {
		merged.CondicionesCliente = *patch.CondicionesCliente
	}
	if patch.ComprasDetalle != nil {
		merged.ComprasDetalle = *patch.ComprasDetalle
	}
	if patch.ImagenURL != nil {
		merged.ImagenURL = *patch.ImagenURL
	}
	merged.ActualizadoEn = now
	return merged
}

// PedidoService owns the pedido lifecycle: creation with folio assignment,
// merge updates and cascade deletion.
type PedidoService struct {
	store       repository.Store
	storage     FileStorage
	folioPrefix string
}

// NewPedidoService creates a pedido service over the given collaborators
func NewPedidoService(store repository.Store, storage FileStorage, folioPrefix string) *PedidoService {
	return &PedidoService{
		store:       store,
		storage:     storage,
		folioPrefix: folioPrefix,
	}
}

// List returns all pedidos, newest first
func (s *PedidoService) List() ([]models.Pedido, error) {
	return s.store.ListPedidos()
}

// Get returns one pedido or repository.ErrNotFound
func (s *PedidoService) Get(id uint) (*models.Pedido, error) {
	return s.store.GetPedido(id)
}

// Create persists a new pedido, assigning the folio when the caller did not
// supply one.
func (s *PedidoService) Create(input PedidoCreate) (*models.Pedido, error) {
	now := time.Now().UTC()

	folio := strings.TrimSpace(input.Folio)
	if folio == "" {
		folio = NextFolio(s.store, s.folioPrefix, now)
	}

	estado := input.Estado
	if estado == "" {
		estado = EstadoNuevo
	}

	pedido := &models.Pedido{
		Folio:              folio,
		ClienteNombre:      input.ClienteNombre,
		ClienteTelefono:    input.ClienteTelefono,
		ClienteEscuela:     input.ClienteEscuela,
		PrendaTipo:         input.PrendaTipo,
		PrendaModelo:       input.PrendaModelo,
		DescripcionGeneral: input.DescripcionGeneral,
		FechaEntrega:       input.FechaEntrega,
		Estado:             estado,
		TallasTexto:        input.TallasTexto,
		ComprasNotas:       input.ComprasNotas,
		CorteNotas:         input.CorteNotas,
		ConfeccionNotas:    input.ConfeccionNotas,
		PrecioTotal:        float64(input.PrecioTotal),
		Anticipo:           float64(input.Anticipo),
		Saldo:              float64(input.Saldo),
		GastosCompras:      float64(input.GastosCompras),
		CondicionesCliente: input.CondicionesCliente,
		ComprasDetalle:     input.ComprasDetalle,
		ImagenURL:          input.ImagenURL,
		CreadoEn:           now,
		ActualizadoEn:      now,
	}

	if err := s.store.CreatePedido(pedido); err != nil {
		return nil, err
	}
	return pedido, nil
}

// Update loads the stored pedido, overlays the patch and persists the merged
// row in one write. Either the whole merge lands or nothing does.
func (s *PedidoService) Update(id uint, patch PedidoPatch) (*models.Pedido, error) {
	previous, err := s.store.GetPedido(id)
	if err != nil {
		return nil, err
	}

	merged := MergePedido(*previous, patch, time.Now().UTC())
	if err := s.store.UpdatePedido(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Delete removes the pedido together with its image rows. Stored files are
// cleaned up best-effort: a failed file delete is logged and the pedido is
// removed anyway.
func (s *PedidoService) Delete(id uint) error {
	if _, err := s.store.GetPedido(id); err != nil {
		return err
	}

	removed, err := s.store.DeleteImagenesByPedido(id)
	if err != nil {
		return err
	}
	for _, imagen := range removed {
		if err := s.storage.Delete(imagen.ImagenURL); err != nil {
			zap.S().Warnw("imagen file cleanup failed",
				"pedidoId", id, "url", imagen.ImagenURL, "error", err)
		}
	}

	return s.store.DeletePedido(id)
}

var pedidoServiceInstance *PedidoService

// InitPedidoService sets the process-wide pedido service
func InitPedidoService(service *PedidoService) *PedidoService {
	pedidoServiceInstance = service
	return pedidoServiceInstance
}

// GetPedidoService returns the initialized pedido service
func GetPedidoService() *PedidoService {
	return pedidoServiceInstance
}

// SetPedidoService sets the pedido service (primarily for testing)
func SetPedidoService(service *PedidoService) {
	pedidoServiceInstance = service
}
