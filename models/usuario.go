package models

// Usuario is a system operator. The password is an opaque credential
// compared by the auth service; it is never serialized in responses.
type Usuario struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Nombre   string `gorm:"column:nombre;not null" json:"nombre"`
	Email    string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password;not null" json:"-"`
	Rol      string `gorm:"column:rol;not null;default:'operador'" json:"rol"` // "admin" or "operador"
}

// TableName specifies the table name for the Usuario model
func (Usuario) TableName() string {
	return "usuarios"
}
