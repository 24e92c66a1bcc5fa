package models

import "time"

// AuditLog is an append-only record of a staff action. Entries are never
// mutated; the admin can purge the whole table.
type AuditLog struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Fecha   time.Time `gorm:"not null" json:"fecha"`
	Usuario string    `gorm:"size:255;not null" json:"usuario"`
	Accion  string    `gorm:"size:512;not null" json:"accion"`
}

// TableName keeps the table name used by the legacy schema.
func (AuditLog) TableName() string { return "logs" }
