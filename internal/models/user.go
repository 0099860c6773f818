package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an owner account. Every camera, floor, person identity and event
// log row carries a reference back to one user.
type User struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	Username             string    `json:"username" db:"username"`
	HashedPassword       string    `json:"-" db:"hashed_password"`
	SecurityQuestion     string    `json:"-" db:"security_question"`
	HashedSecurityAnswer string    `json:"-" db:"hashed_security_answer"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}
