package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCustomerRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,min=2,max=120"`
	TipoDocumento   string  `json:"tipo_documento"   validate:"omitempty,oneof=dni ce pasaporte ruc"`
	NumeroDocumento string  `json:"numero_documento" validate:"required,min=4,max=20"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email" validate:"omitempty,email"`
}

type ActualizarCustomerRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=120"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID              string  `json:"id"`
	Nombre          string  `json:"nombre"`
	TipoDocumento   string  `json:"tipo_documento"`
	NumeroDocumento string  `json:"numero_documento"`
	Telefono        *string `json:"telefono,omitempty"`
	Email           *string `json:"email,omitempty"`
	Activo          bool    `json:"activo"`
}
