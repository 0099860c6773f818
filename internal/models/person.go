package models

import (
	"time"

	"github.com/google/uuid"
)

type PersonType string

const (
	PersonTypeFamily   PersonType = "FAMILY"
	PersonTypeUnwanted PersonType = "UNWANTED"
)

// PersonIdentity is a tracked individual. FAMILY identities are created
// explicitly by the owner. UNWANTED identities are created implicitly when
// the perception pipeline reports an unrecognized person, and are
// garbage-collected once no event log references them.
type PersonIdentity struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	PersonType   PersonType `json:"person_type" db:"person_type"`
	Relationship string     `json:"relationship,omitempty" db:"relationship"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type PersonPhoto struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PersonID  uuid.UUID `json:"person_id" db:"person_id"`
	PhotoURL  string    `json:"photo_url" db:"photo_url"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
}
