package models

import "time"

// Imagen is a reference image uploaded for a pedido. Rows are removed
// together with their pedido; there is no standalone delete endpoint.
type Imagen struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PedidoID  uint      `gorm:"column:pedido_id;not null;index" json:"pedidoId"`
	ImagenURL string    `gorm:"column:imagen_url;not null" json:"imagenUrl"` // bucket URL or local upload path, opaque to callers
	CreadoEn  time.Time `gorm:"column:creado_en" json:"creadoEn"`
}

// TableName specifies the table name for the Imagen model
func (Imagen) TableName() string {
	return "imagenes"
}
