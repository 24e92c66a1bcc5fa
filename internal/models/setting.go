package models

// SettingIntakeOpen is the key gating public submissions.
const SettingIntakeOpen = "convocatoria_activa"

// Setting is a key-value configuration row.
type Setting struct {
	Clave string `gorm:"primaryKey;size:64" json:"clave"`
	Valor string `gorm:"size:255;not null" json:"valor"`
}

// TableName keeps the table name used by the legacy schema.
func (Setting) TableName() string { return "configuracion" }
