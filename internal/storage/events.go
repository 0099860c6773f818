package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
)

// CreateDetection persists one perception-pipeline detection as an event
// log, minting an implicit UNWANTED identity when the subject is unknown.
// The identity, the log and its interactions commit together or not at all.
func (s *PostgresStore) CreateDetection(ctx context.Context, msg *models.DetectionMessage) (*models.EventLog, error) {
	log := &models.EventLog{
		UserID:      msg.UserID,
		PersonID:    msg.PersonID,
		CameraID:    msg.CameraID,
		EventType:   msg.EventType,
		DetectedAt:  msg.DetectedAt,
		SnapshotURL: msg.SnapshotURL,
	}
	if log.DetectedAt.IsZero() {
		log.DetectedAt = time.Now()
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if log.PersonID == nil {
			id, err := createUnwantedIdentity(ctx, tx, msg.UserID, "")
			if err != nil {
				return err
			}
			log.PersonID = &id
			log.EventType = models.EventTypeUnwantedDetected
		}

		err := tx.QueryRow(ctx,
			`INSERT INTO event_logs (user_id, person_id, camera_id, event_type, detected_at, snapshot_url)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
			log.UserID, log.PersonID, log.CameraID, log.EventType, log.DetectedAt, log.SnapshotURL,
		).Scan(&log.ID, &log.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert event log: %w", err)
		}

		for _, oi := range msg.Interactions {
			if _, err := tx.Exec(ctx,
				`INSERT INTO object_interactions (event_log_id, object_name, moved_at, location_data)
				 VALUES ($1, $2, $3, $4)`,
				log.ID, oi.ObjectName, oi.MovedAt, oi.LocationData); err != nil {
				return fmt.Errorf("insert interaction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

// CloseEvent marks an ongoing visit as ended. Already-closed logs keep their
// original exit time.
func (s *PostgresStore) CloseEvent(ctx context.Context, logID uuid.UUID, exitedAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE event_logs SET exited_at = $1 WHERE id = $2 AND exited_at IS NULL`,
		exitedAt, logID)
	if err != nil {
		return fmt.Errorf("close event: %w", err)
	}
	return nil
}

// ReclassifyResult reports the outcome of the unmark-unwanted workflow.
type ReclassifyResult struct {
	LogID             uuid.UUID `json:"log_id"`
	NewPersonID       uuid.UUID `json:"new_person_id"`
	IdentityCollected bool      `json:"identity_collected"`
}

// Reclassify moves a log's subject from an unwanted identity to a family
// identity and garbage-collects the old identity once nothing references it.
// Runs as one transaction: the rewrite happens first, then the remaining-use
// count, so when the old and the new identity are the same the rewritten row
// keeps the count above zero and the delete is skipped. The delete itself
// ignores already-gone rows so concurrent reclassifications do not error.
func (s *PostgresStore) Reclassify(ctx context.Context, userID, logID, newFamilyID uuid.UUID) (*ReclassifyResult, error) {
	res := &ReclassifyResult{LogID: logID, NewPersonID: newFamilyID}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var oldPersonID *uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT person_id FROM event_logs WHERE id = $1 AND user_id = $2 FOR UPDATE`,
			logID, userID).Scan(&oldPersonID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("read log: %w", err)
		}

		var targetType models.PersonType
		err = tx.QueryRow(ctx,
			`SELECT person_type FROM persons WHERE id = $1 AND user_id = $2`,
			newFamilyID, userID).Scan(&targetType)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("read target identity: %w", err)
		}
		if targetType != models.PersonTypeFamily {
			return fmt.Errorf("%w: target identity is not a family member", ErrInvalidInput)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE event_logs SET person_id = $1, event_type = $2 WHERE id = $3`,
			newFamilyID, models.EventTypeFamilyDetected, logID); err != nil {
			return fmt.Errorf("rewrite log: %w", err)
		}

		if oldPersonID == nil {
			return nil
		}

		var remaining int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM event_logs WHERE person_id = $1`,
			*oldPersonID).Scan(&remaining); err != nil {
			return fmt.Errorf("count remaining usage: %w", err)
		}
		if remaining > 0 {
			return nil
		}

		// Photos go with the identity via ON DELETE CASCADE. Zero rows
		// affected means another reclassify got here first; that is fine.
		if _, err := tx.Exec(ctx,
			`DELETE FROM persons WHERE id = $1`, *oldPersonID); err != nil {
			return fmt.Errorf("collect orphaned identity: %w", err)
		}
		res.IdentityCollected = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EventKind is the investigate type filter.
type EventKind string

const (
	EventKindAll      EventKind = "All"
	EventKindFamily   EventKind = "Family"
	EventKindUnwanted EventKind = "Unwanted"
)

// InvestigateFilter is a fully parsed set of conjunctive filters. Build one
// with ParseInvestigateFilter so malformed input is rejected before any
// query executes.
type InvestigateFilter struct {
	Kind     EventKind
	CameraID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// detectedTimeLayouts are the textual timestamp shapes investigators may
// type. Tried in order.
var detectedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

func parseDetectedTime(value string) (time.Time, error) {
	for _, layout := range detectedTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date format %q", ErrInvalidInput, value)
}

// ParseInvestigateFilter validates the raw filter strings. Empty kind and
// camera values, and the literal "All", mean no filtering on that axis.
func ParseInvestigateFilter(kind, cameraID, startingTime, endingTime string) (InvestigateFilter, error) {
	f := InvestigateFilter{Kind: EventKindAll}

	switch EventKind(kind) {
	case "", EventKindAll:
	case EventKindFamily, EventKindUnwanted:
		f.Kind = EventKind(kind)
	default:
		return f, fmt.Errorf("%w: unknown event kind %q", ErrInvalidInput, kind)
	}

	if cameraID != "" && cameraID != string(EventKindAll) {
		id, err := uuid.Parse(cameraID)
		if err != nil {
			return f, fmt.Errorf("%w: invalid camera id %q", ErrInvalidInput, cameraID)
		}
		f.CameraID = &id
	}

	if startingTime != "" {
		t, err := parseDetectedTime(startingTime)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if endingTime != "" {
		t, err := parseDetectedTime(endingTime)
		if err != nil {
			return f, err
		}
		f.To = &t
	}

	return f, nil
}

// buildInvestigateWhere assembles the conjunctive WHERE clause. Unset
// filters contribute nothing.
func buildInvestigateWhere(userID uuid.UUID, f InvestigateFilter) (string, []any) {
	where := "WHERE el.user_id = $1"
	args := []any{userID}
	argIdx := 2

	switch f.Kind {
	case EventKindFamily:
		where += fmt.Sprintf(" AND el.event_type = $%d", argIdx)
		args = append(args, models.EventTypeFamilyDetected)
		argIdx++
	case EventKindUnwanted:
		where += fmt.Sprintf(" AND el.event_type = $%d", argIdx)
		args = append(args, models.EventTypeUnwantedDetected)
		argIdx++
	}

	if f.CameraID != nil {
		where += fmt.Sprintf(" AND el.camera_id = $%d", argIdx)
		args = append(args, *f.CameraID)
		argIdx++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND el.detected_at >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND el.detected_at <= $%d", argIdx)
		args = append(args, *f.To)
		argIdx++
	}

	return where, args
}

// InteractionView is one object interaction as shown to investigators.
type InteractionView struct {
	ObjectName   string          `json:"object_name"`
	MovedAt      time.Time       `json:"moved_at"`
	LocationData json.RawMessage `json:"location_data,omitempty"`
}

// EventLogView is one event joined with the person, camera and floor it
// involves, plus its interaction sub-records.
type EventLogView struct {
	LogID        uuid.UUID         `json:"log_id"`
	EventType    models.EventType  `json:"event_type"`
	DetectedAt   time.Time         `json:"detected_at"`
	ExitedAt     *time.Time        `json:"exited_at,omitempty"`
	SnapshotURL  string            `json:"snapshot_url"`
	PersonID     *uuid.UUID        `json:"person_id,omitempty"`
	PersonName   string            `json:"person_name"`
	PersonPhoto  string            `json:"person_photo"`
	RoomName     string            `json:"room_name"`
	FloorTitle   string            `json:"floor_title"`
	Interactions []InteractionView `json:"interactions"`
}

const eventViewSelect = `
	SELECT
		el.id,
		el.event_type,
		el.detected_at,
		el.exited_at,
		el.snapshot_url,
		el.person_id,
		COALESCE(p.name, 'Unknown'),
		COALESCE(pp.photo_url, ''),
		COALESCE(c.location, ''),
		COALESCE(f.title, ''),
		COALESCE((
			SELECT json_agg(json_build_object(
				'object_name', oi.object_name,
				'moved_at', oi.moved_at,
				'location_data', oi.location_data
			) ORDER BY oi.moved_at)
			FROM object_interactions oi
			WHERE oi.event_log_id = el.id
		), '[]')
	FROM event_logs el
	LEFT JOIN persons p ON el.person_id = p.id
	LEFT JOIN person_photos pp ON p.id = pp.person_id AND pp.is_primary = TRUE
	LEFT JOIN cameras c ON el.camera_id = c.id
	LEFT JOIN floors f ON c.floor_id = f.id `

func scanEventViews(rows pgx.Rows) ([]EventLogView, error) {
	views := []EventLogView{}
	for rows.Next() {
		var v EventLogView
		var interactions []byte
		if err := rows.Scan(&v.LogID, &v.EventType, &v.DetectedAt, &v.ExitedAt, &v.SnapshotURL,
			&v.PersonID, &v.PersonName, &v.PersonPhoto, &v.RoomName, &v.FloorTitle,
			&interactions); err != nil {
			return nil, fmt.Errorf("scan event view: %w", err)
		}
		v.Interactions = []InteractionView{}
		if len(interactions) > 0 {
			if err := json.Unmarshal(interactions, &v.Interactions); err != nil {
				return nil, fmt.Errorf("decode interactions: %w", err)
			}
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// Investigate returns the owner's events matching every set filter, newest
// first, each with its interactions as an empty-not-nil sub-sequence.
func (s *PostgresStore) Investigate(ctx context.Context, userID uuid.UUID, f InvestigateFilter) ([]EventLogView, error) {
	where, args := buildInvestigateWhere(userID, f)
	query := eventViewSelect + where + " ORDER BY el.detected_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("investigate: %w", err)
	}
	defer rows.Close()

	return scanEventViews(rows)
}

// ListLogFeed returns the owner's events of one type, newest first. Backs
// the family and unwanted log screens.
func (s *PostgresStore) ListLogFeed(ctx context.Context, userID uuid.UUID, eventType models.EventType) ([]EventLogView, error) {
	rows, err := s.pool.Query(ctx,
		eventViewSelect+`WHERE el.user_id = $1 AND el.event_type = $2 ORDER BY el.detected_at DESC`,
		userID, eventType)
	if err != nil {
		return nil, fmt.Errorf("list log feed: %w", err)
	}
	defer rows.Close()

	return scanEventViews(rows)
}

// DashboardSummary is the home-screen rollup.
type DashboardSummary struct {
	CameraCount       int           `json:"camera_count"`
	FamilyCount       int           `json:"family_count"`
	AlertsToday       int           `json:"alerts_today"`
	RecentFamilyLog   *EventLogView `json:"recent_family_log"`
	RecentUnwantedLog *EventLogView `json:"recent_unwanted_log"`
}

func (s *PostgresStore) GetDashboardSummary(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	sum := &DashboardSummary{}

	var err error
	if sum.CameraCount, err = s.CountCameras(ctx, userID); err != nil {
		return nil, fmt.Errorf("count cameras: %w", err)
	}
	if sum.FamilyCount, err = s.CountFamilyMembers(ctx, userID); err != nil {
		return nil, fmt.Errorf("count family members: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_logs
		 WHERE user_id = $1 AND event_type = $2 AND detected_at::date = CURRENT_DATE`,
		userID, models.EventTypeUnwantedDetected).Scan(&sum.AlertsToday)
	if err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}

	if sum.RecentFamilyLog, err = s.recentEvent(ctx, userID, models.EventTypeFamilyDetected); err != nil {
		return nil, err
	}
	if sum.RecentUnwantedLog, err = s.recentEvent(ctx, userID, models.EventTypeUnwantedDetected); err != nil {
		return nil, err
	}

	return sum, nil
}

func (s *PostgresStore) recentEvent(ctx context.Context, userID uuid.UUID, eventType models.EventType) (*EventLogView, error) {
	rows, err := s.pool.Query(ctx,
		eventViewSelect+`WHERE el.user_id = $1 AND el.event_type = $2 ORDER BY el.detected_at DESC LIMIT 1`,
		userID, eventType)
	if err != nil {
		return nil, fmt.Errorf("recent event: %w", err)
	}
	defer rows.Close()

	views, err := scanEventViews(rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}
