package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeFamilyDetected   EventType = "family_detected"
	EventTypeUnwantedDetected EventType = "unwanted_detected"
)

// EventLog is one detection record: a person seen by a camera over a time
// interval. PersonID and CameraID are lookup references, not ownership; a
// null ExitedAt means the visit is ongoing.
type EventLog struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	PersonID    *uuid.UUID `json:"person_id,omitempty" db:"person_id"`
	CameraID    *uuid.UUID `json:"camera_id,omitempty" db:"camera_id"`
	EventType   EventType  `json:"event_type" db:"event_type"`
	DetectedAt  time.Time  `json:"detected_at" db:"detected_at"`
	ExitedAt    *time.Time `json:"exited_at,omitempty" db:"exited_at"`
	SnapshotURL string     `json:"snapshot_url" db:"snapshot_url"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type ObjectInteraction struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	EventLogID   uuid.UUID       `json:"event_log_id" db:"event_log_id"`
	ObjectName   string          `json:"object_name" db:"object_name"`
	MovedAt      time.Time       `json:"moved_at" db:"moved_at"`
	LocationData json.RawMessage `json:"location_data,omitempty" db:"location_data"`
}

// DetectionMessage is what the perception pipeline publishes to NATS for
// every recognition. A nil PersonID means the subject was not recognized and
// an UNWANTED identity must be minted for it.
type DetectionMessage struct {
	UserID       uuid.UUID           `json:"user_id"`
	CameraID     *uuid.UUID          `json:"camera_id,omitempty"`
	PersonID     *uuid.UUID          `json:"person_id,omitempty"`
	EventType    EventType           `json:"event_type"`
	DetectedAt   time.Time           `json:"detected_at"`
	SnapshotURL  string              `json:"snapshot_url"`
	Interactions []ObjectInteraction `json:"interactions,omitempty"`
}

// ExitMessage closes an ongoing visit.
type ExitMessage struct {
	LogID    uuid.UUID `json:"log_id"`
	ExitedAt time.Time `json:"exited_at"`
}
