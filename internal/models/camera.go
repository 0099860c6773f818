package models

import (
	"time"

	"github.com/google/uuid"
)

type Camera struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Location    string     `json:"location" db:"location"`
	VideoURL    string     `json:"video_url" db:"video_url"`
	Description string     `json:"description" db:"description"`
	IsPrivate   bool       `json:"is_private" db:"is_private"`
	FloorID     *uuid.UUID `json:"floor_id,omitempty" db:"floor_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// CameraEdge is an undirected adjacency link between two cameras of the same
// owner. Rows are stored with the lexicographically smaller id in FromID so
// each unordered pair has exactly one canonical row.
type CameraEdge struct {
	FromID uuid.UUID `json:"camera_id_from" db:"camera_id_from"`
	ToID   uuid.UUID `json:"camera_id_to" db:"camera_id_to"`
}
