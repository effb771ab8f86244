package auth

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Role     string `json:"role" binding:"required" validate:"required,oneof=artist venue"`
	Name     string `json:"name" binding:"required" validate:"required"`
	City     string `json:"city"`
	Genre    string `json:"genre"`
	Capacity int    `json:"capacity" validate:"omitempty,min=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}
