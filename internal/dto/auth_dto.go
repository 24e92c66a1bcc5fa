package dto

// LoginRequest carries staff credentials. Accepted as JSON or form fields.
// The success payload (usuario, rol, csrf_token, redirect) is assembled by
// the auth handler directly into the response envelope.
type LoginRequest struct {
	Usuario  string `json:"usuario" form:"usuario" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}
