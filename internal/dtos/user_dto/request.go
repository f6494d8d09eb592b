package user_dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Pin      string `json:"pin" validate:"required,min=4"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Pin      string `json:"pin" validate:"required"`
}
