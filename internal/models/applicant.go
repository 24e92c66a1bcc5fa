package models

import "time"

// Applicant is a candidate record submitted through the public intake form.
// UsuarioAtendio is the claim owner: it is written at most once by the
// conditional claim update and never cleared except by deletion.
type Applicant struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	Convocatoria      string     `gorm:"size:255;not null;index:idx_convocatoria" json:"convocatoria"`
	Apellidos         string     `gorm:"size:255;not null" json:"apellidos"`
	Nombres           string     `gorm:"size:255;not null" json:"nombres"`
	TipoDocumento     string     `gorm:"size:32;not null;uniqueIndex:idx_documento_unico" json:"tipo_documento"`
	NumeroDocumento   string     `gorm:"size:32;not null;uniqueIndex:idx_documento_unico" json:"numero_documento"`
	FechaNacimiento   string     `gorm:"size:32;not null" json:"fecha_nacimiento"`
	Sexo              string     `gorm:"size:16;not null;index:idx_sexo" json:"sexo"`
	Celular           string     `gorm:"size:32;not null" json:"celular"`
	Correo            string     `gorm:"size:255;not null" json:"correo"`
	Validado          int        `gorm:"not null;default:0" json:"validado"`
	FuerzasArmadas    string     `gorm:"size:16" json:"fuerzas_armadas"`
	TieneDiscapacidad string     `gorm:"size:16" json:"tiene_discapacidad"`
	TipoDiscapacidad  string     `gorm:"size:255" json:"tipo_discapacidad"`
	Area              string     `gorm:"size:255;index:idx_area" json:"area"`
	UsuarioAtendio    *string    `gorm:"size:255;index:idx_usuario_atendio" json:"usuario_atendio,omitempty"`
	FechaAtencion     *time.Time `json:"fecha_atencion,omitempty"`
}

// TableName keeps the table name used by the legacy schema.
func (Applicant) TableName() string { return "postulantes" }
