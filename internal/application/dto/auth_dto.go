package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest alta de empresa + usuario administrador.
type RegisterRequest struct {
	FirstName      string `json:"firstName" validate:"required,max=100"`
	LastName       string `json:"lastName" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=200"`
	Password       string `json:"password" validate:"required,min=6,max=100"`
	CompanyName    string `json:"companyName" validate:"required,max=200"`
	CompanyAddress string `json:"companyAddress" validate:"omitempty,max=500"`
	CompanyPhone   string `json:"companyPhone" validate:"omitempty,max=50"`
}

// RefreshRequest token (posiblemente expirado) a renovar.
type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse respuesta de login, registro y refresh.
type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}
