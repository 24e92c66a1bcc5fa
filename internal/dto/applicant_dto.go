package dto

// SubmitRequest is the public intake payload. Field names match the legacy
// form wire format.
type SubmitRequest struct {
	Area              string `json:"area" validate:"required"`
	Convocatoria      string `json:"convocatoria" validate:"required"`
	Apellidos         string `json:"apellidos" validate:"required"`
	Nombres           string `json:"nombres" validate:"required"`
	TipoDocumento     string `json:"tipo_documento" validate:"required"`
	NumeroDocumento   string `json:"numero_documento" validate:"required"`
	FechaNacimiento   string `json:"fecha_nacimiento" validate:"required"`
	Sexo              string `json:"sexo" validate:"required"`
	Celular           string `json:"celular" validate:"required"`
	Correo            string `json:"correo" validate:"required,email"`
	FuerzasArmadas    string `json:"fuerzas_armadas" validate:"required"`
	TieneDiscapacidad string `json:"tiene_discapacidad" validate:"required"`
	TipoDiscapacidad  string `json:"tipo_discapacidad"`
}

// VerifyRequest looks up an applicant by identity document.
type VerifyRequest struct {
	TipoDocumento   string `json:"tipo_documento" validate:"required"`
	NumeroDocumento string `json:"numero_documento" validate:"required"`
}

// VerifyResult is the existence-lookup payload returned to the public form.
type VerifyResult struct {
	Existe        bool   `json:"existe"`
	Convocatoria  string `json:"convocatoria,omitempty"`
	Area          string `json:"area,omitempty"`
	Apellidos     string `json:"apellidos,omitempty"`
	Nombres       string `json:"nombres,omitempty"`
	FechaRegistro string `json:"fecha_registro,omitempty"`
}

// ClaimRequest identifies the applicant a staff member wants to receive.
type ClaimRequest struct {
	ID uint `json:"id" validate:"required"`
}

// EditRequest updates an unclaimed applicant's biographical fields.
type EditRequest struct {
	ID                uint   `json:"id" validate:"required"`
	Area              string `json:"area" validate:"required"`
	Convocatoria      string `json:"convocatoria" validate:"required"`
	Apellidos         string `json:"apellidos" validate:"required"`
	Nombres           string `json:"nombres" validate:"required"`
	FechaNacimiento   string `json:"fecha_nacimiento" validate:"required"`
	Sexo              string `json:"sexo" validate:"required"`
	Celular           string `json:"celular" validate:"required"`
	Correo            string `json:"correo" validate:"required,email"`
	FuerzasArmadas    string `json:"fuerzas_armadas"`
	TieneDiscapacidad string `json:"tiene_discapacidad"`
	TipoDiscapacidad  string `json:"tipo_discapacidad"`
}
