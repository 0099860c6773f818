package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
)

func (s *PostgresStore) CreateCamera(ctx context.Context, cam *models.Camera) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cameras (user_id, name, location, video_url, description, is_private, floor_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		cam.UserID, cam.Name, cam.Location, cam.VideoURL, cam.Description, cam.IsPrivate, cam.FloorID,
	).Scan(&cam.ID, &cam.CreatedAt)
	if err != nil {
		return fmt.Errorf("create camera: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCameras(ctx context.Context, userID uuid.UUID) ([]models.Camera, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, location, video_url, description, is_private, floor_id, created_at
		 FROM cameras WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	defer rows.Close()

	var cams []models.Camera
	for rows.Next() {
		var cam models.Camera
		if err := rows.Scan(&cam.ID, &cam.UserID, &cam.Name, &cam.Location, &cam.VideoURL,
			&cam.Description, &cam.IsPrivate, &cam.FloorID, &cam.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan camera: %w", err)
		}
		cams = append(cams, cam)
	}
	return cams, rows.Err()
}

// GetCamera returns an owned camera. Absent and foreign rows are both
// ErrNotFound so callers cannot probe for existence.
func (s *PostgresStore) GetCamera(ctx context.Context, userID, cameraID uuid.UUID) (*models.Camera, error) {
	cam := &models.Camera{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, name, location, video_url, description, is_private, floor_id, created_at
		 FROM cameras WHERE id = $1 AND user_id = $2`, cameraID, userID,
	).Scan(&cam.ID, &cam.UserID, &cam.Name, &cam.Location, &cam.VideoURL,
		&cam.Description, &cam.IsPrivate, &cam.FloorID, &cam.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get camera: %w", err)
	}
	return cam, nil
}

func (s *PostgresStore) UpdateCamera(ctx context.Context, cam *models.Camera) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE cameras SET name = $1, location = $2, video_url = $3, description = $4, is_private = $5, floor_id = $6
		 WHERE id = $7 AND user_id = $8`,
		cam.Name, cam.Location, cam.VideoURL, cam.Description, cam.IsPrivate, cam.FloorID,
		cam.ID, cam.UserID)
	if err != nil {
		return fmt.Errorf("update camera: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCamera removes a camera together with its graph edges and event
// logs in one transaction.
func (s *PostgresStore) DeleteCamera(ctx context.Context, userID, cameraID uuid.UUID) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		var owner uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT user_id FROM cameras WHERE id = $1`, cameraID).Scan(&owner)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("check camera: %w", err)
		}
		if owner != userID {
			return ErrNotFound
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM camera_links WHERE camera_id_from = $1 OR camera_id_to = $1`, cameraID); err != nil {
			return fmt.Errorf("delete camera edges: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM event_logs WHERE camera_id = $1`, cameraID); err != nil {
			return fmt.Errorf("delete camera logs: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM cameras WHERE id = $1`, cameraID); err != nil {
			return fmt.Errorf("delete camera: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) CountCameras(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cameras WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
