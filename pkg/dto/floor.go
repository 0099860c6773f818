package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreateFloorRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type FloorResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

type CreateFloorPlanRequest struct {
	FloorID  uuid.UUID       `json:"floor_id" binding:"required"`
	PlanData json.RawMessage `json:"plan_data" binding:"required"`
}

type UpdateFloorPlanRequest struct {
	PlanData json.RawMessage `json:"plan_data" binding:"required"`
}

type FloorPlanResponse struct {
	ID       uuid.UUID       `json:"id"`
	FloorID  uuid.UUID       `json:"floor_id"`
	PlanData json.RawMessage `json:"plan_data"`
}
