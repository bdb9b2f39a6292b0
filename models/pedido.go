package models

import "time"

// Pedido represents a school-uniform tailoring job tracked through the
// compras, corte and confección stages. Column names are the snake_case
// names used by the stored rows; JSON tags are the camelCase names the
// frontend works with.
type Pedido struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Folio              string    `gorm:"column:folio;uniqueIndex;not null" json:"folio"` // human-facing order number, assigned once at creation
	ClienteNombre      string    `gorm:"column:cliente_nombre" json:"clienteNombre"`
	ClienteTelefono    string    `gorm:"column:cliente_telefono" json:"clienteTelefono"`
	ClienteEscuela     string    `gorm:"column:cliente_escuela" json:"clienteEscuela"`
	PrendaTipo         string    `gorm:"column:prenda_tipo" json:"prendaTipo"`
	PrendaModelo       string    `gorm:"column:prenda_modelo" json:"prendaModelo"`
	DescripcionGeneral string    `gorm:"column:descripcion_general" json:"descripcionGeneral"`
	FechaEntrega       string    `gorm:"column:fecha_entrega" json:"fechaEntrega"`
	Estado             string    `gorm:"column:estado" json:"estado"` // free-form workflow state, "nuevo" at creation
	TallasTexto        string    `gorm:"column:tallas_texto" json:"tallasTexto"`
	ComprasNotas       string    `gorm:"column:compras_notas" json:"comprasNotas"`
	CorteNotas         string    `gorm:"column:corte_notas" json:"corteNotas"`
	ConfeccionNotas    string    `gorm:"column:confeccion_notas" json:"confeccionNotas"`
	PrecioTotal        float64   `gorm:"column:precio_total;default:0" json:"precioTotal"`
	Anticipo           float64   `gorm:"column:anticipo;default:0" json:"anticipo"`
	Saldo              float64   `gorm:"column:saldo;default:0" json:"saldo"` // independently settable, never derived from precioTotal - anticipo
	GastosCompras      float64   `gorm:"column:gastos_compras;default:0" json:"gastosCompras"`
	CondicionesCliente string    `gorm:"column:condiciones_cliente" json:"condicionesCliente"`
	ComprasDetalle     string    `gorm:"column:compras_detalle" json:"comprasDetalle"`
	ImagenURL          string    `gorm:"column:imagen_url" json:"imagenUrl"` // cover image; set by the first upload, empty until then
	CreadoEn           time.Time `gorm:"column:creado_en" json:"creadoEn"`
	ActualizadoEn      time.Time `gorm:"column:actualizado_en" json:"actualizadoEn"`
}

// TableName specifies the table name for the Pedido model
func (Pedido) TableName() string {
	return "pedidos"
}
