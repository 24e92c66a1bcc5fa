package dto

// CreateUserRequest registers a new staff account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Rol      string `json:"rol"`
}

// UsernameRequest targets a staff account by username.
type UsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

// ChangePasswordRequest replaces a staff account's password.
type ChangePasswordRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// IntakeStateRequest toggles whether public submissions are accepted.
type IntakeStateRequest struct {
	Activa *bool `json:"activa" validate:"required"`
}

// StatsResult mirrors the legacy dashboard counters.
type StatsResult struct {
	RegistradosMujeres int64            `json:"registrados_mujeres"`
	RegistradosHombres int64            `json:"registrados_hombres"`
	RecibidosMujeres   int64            `json:"recibidos_mujeres"`
	RecibidosHombres   int64            `json:"recibidos_hombres"`
	PorArea            map[string]int64 `json:"por_area"`
}

// LogQuery paginates and filters the audit log.
type LogQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Search   string `query:"q"`
}
