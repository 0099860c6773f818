package dto

import "github.com/google/uuid"

type CreateCameraRequest struct {
	Name        string     `json:"name" binding:"required"`
	Location    string     `json:"location"`
	VideoURL    string     `json:"video_url" binding:"required"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"is_private"`
	FloorID     *uuid.UUID `json:"floor_id,omitempty"`
}

type UpdateCameraRequest struct {
	Name        string     `json:"name" binding:"required"`
	Location    string     `json:"location"`
	VideoURL    string     `json:"video_url" binding:"required"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"is_private"`
	FloorID     *uuid.UUID `json:"floor_id,omitempty"`
}

type CameraResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"is_private"`
	FloorID     *uuid.UUID `json:"floor_id,omitempty"`
	CreatedAt   string     `json:"created_at"`
}

// CameraDetailResponse carries the stream address. VideoURL is empty when
// the camera is flagged private; the suppression is applied server-side on
// read.
type CameraDetailResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	VideoURL    string     `json:"video_url,omitempty"`
	IsPrivate   bool       `json:"is_private"`
	FloorID     *uuid.UUID `json:"floor_id,omitempty"`
}

type ReplaceNetworkRequest struct {
	TargetIDs []uuid.UUID `json:"target_ids"`
}

type ReplaceNetworkResponse struct {
	CameraID uuid.UUID `json:"camera_id"`
	Count    int       `json:"count"`
}

type NeighborsResponse struct {
	CameraID  uuid.UUID   `json:"camera_id"`
	Neighbors []uuid.UUID `json:"neighbors"`
}

type GraphResponse struct {
	Graph map[string][]uuid.UUID `json:"graph"`
}
