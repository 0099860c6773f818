package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Floor struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// FloorPlan stores the drawn layout of a floor as an opaque JSON blob
// (walls, windows, cameras, doors). The server never interprets it.
type FloorPlan struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	FloorID   uuid.UUID       `json:"floor_id" db:"floor_id"`
	PlanData  json.RawMessage `json:"plan_data" db:"plan_data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// EmptyPlanData is what clients receive when no plan has been drawn yet.
var EmptyPlanData = json.RawMessage(`{"walls":[],"windows":[],"cameras":[],"doors":[]}`)
