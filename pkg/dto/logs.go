package dto

import "github.com/google/uuid"

// InvestigateRequest carries the investigator's filters. "All" (or empty)
// disables a filter; times are textual and validated server-side.
type InvestigateRequest struct {
	Type         string `json:"type"`
	CameraID     string `json:"camera_id"`
	StartingTime string `json:"starting_time"`
	EndingTime   string `json:"ending_time"`
}

type ReclassifyRequest struct {
	NewFamilyID uuid.UUID `json:"new_family_id" binding:"required"`
}

type ReclassifyResponse struct {
	LogID       uuid.UUID `json:"log_id"`
	NewPersonID uuid.UUID `json:"new_person_id"`
}

// AlertMessage is pushed over the WebSocket hub on every stored detection.
type AlertMessage struct {
	Type        string     `json:"type"` // family_detected, unwanted_detected
	LogID       uuid.UUID  `json:"log_id"`
	UserID      uuid.UUID  `json:"user_id"`
	CameraID    *uuid.UUID `json:"camera_id,omitempty"`
	PersonID    *uuid.UUID `json:"person_id,omitempty"`
	DetectedAt  string     `json:"detected_at"`
	SnapshotURL string     `json:"snapshot_url,omitempty"`
}
