package dto

import "github.com/google/uuid"

type SignupRequest struct {
	Name             string `json:"name" binding:"required"`
	Username         string `json:"username" binding:"required"`
	Password         string `json:"password" binding:"required,min=8"`
	SecurityQuestion string `json:"security_question" binding:"required"`
	SecurityAnswer   string `json:"security_answer" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Token    string    `json:"token"`
}

type ResetPasswordRequest struct {
	Username         string `json:"username" binding:"required"`
	SecurityQuestion string `json:"security_question" binding:"required"`
	SecurityAnswer   string `json:"security_answer" binding:"required"`
	NewPassword      string `json:"new_password" binding:"required,min=8"`
}
