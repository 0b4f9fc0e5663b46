package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Username     string  `json:"username"      validate:"required,min=3,max=80"`
	Nombre       string  `json:"nombre"        validate:"required,min=2,max=120"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Password     string  `json:"password"      validate:"required,min=8"`
	Rol          string  `json:"rol"           validate:"required,oneof=trabajador administrador"`
	TrabajadorID *string `json:"trabajador_id" validate:"omitempty,uuid"`
}

type SolicitarResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmarResetRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int              `json:"expires_in"`
	Usuario      *UsuarioResponse `json:"usuario"`
}

type UsuarioResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Nombre       string  `json:"nombre"`
	Email        *string `json:"email"`
	Rol          string  `json:"rol"`
	TrabajadorID *string `json:"trabajador_id"`
	Activo       bool    `json:"activo"`
}
