package models

import "time"

// Staff roles.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// AdminUsername is the built-in administrator account. It cannot be
// deactivated or deleted.
const AdminUsername = "admin"

// User is a staff account. The stored password is compared verbatim at
// login to stay compatible with the existing account data.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Rol       string    `gorm:"size:32;not null" json:"rol"`
	Activo    int       `gorm:"not null;default:1" json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the table name used by the legacy schema.
func (User) TableName() string { return "usuarios" }
