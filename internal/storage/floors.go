package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
)

func (s *PostgresStore) CreateFloor(ctx context.Context, f *models.Floor) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO floors (user_id, title, description) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		f.UserID, f.Title, f.Description,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create floor: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListFloors(ctx context.Context, userID uuid.UUID) ([]models.Floor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, title, description, created_at
		 FROM floors WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	defer rows.Close()

	var floors []models.Floor
	for rows.Next() {
		var f models.Floor
		if err := rows.Scan(&f.ID, &f.UserID, &f.Title, &f.Description, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan floor: %w", err)
		}
		floors = append(floors, f)
	}
	return floors, rows.Err()
}

// CreateFloorPlan stores the drawn layout blob for a floor the owner must
// actually own.
func (s *PostgresStore) CreateFloorPlan(ctx context.Context, userID, floorID uuid.UUID, planData json.RawMessage) (*models.FloorPlan, error) {
	var owner uuid.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM floors WHERE id = $1`, floorID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("check floor: %w", err)
	}
	if owner != userID {
		return nil, ErrNotFound
	}

	fp := &models.FloorPlan{FloorID: floorID, PlanData: planData}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO floor_plans (floor_id, plan_data) VALUES ($1, $2)
		 RETURNING id, plan_data, created_at, updated_at`,
		floorID, planData,
	).Scan(&fp.ID, &fp.PlanData, &fp.CreatedAt, &fp.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create floor plan: %w", err)
	}
	if fp.PlanData == nil {
		fp.PlanData = models.EmptyPlanData
	}
	return fp, nil
}

func (s *PostgresStore) UpdateFloorPlan(ctx context.Context, userID, planID uuid.UUID, planData json.RawMessage) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE floor_plans fp SET plan_data = $1, updated_at = now()
		 FROM floors f
		 WHERE fp.id = $2 AND fp.floor_id = f.id AND f.user_id = $3`,
		planData, planID, userID)
	if err != nil {
		return fmt.Errorf("update floor plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetFloorPlan returns the stored plan, or an empty plan shape when none has
// been drawn yet.
func (s *PostgresStore) GetFloorPlan(ctx context.Context, userID, planID uuid.UUID) (*models.FloorPlan, error) {
	fp := &models.FloorPlan{}
	err := s.pool.QueryRow(ctx,
		`SELECT fp.id, fp.floor_id, fp.plan_data, fp.created_at, fp.updated_at
		 FROM floor_plans fp JOIN floors f ON fp.floor_id = f.id
		 WHERE fp.id = $1 AND f.user_id = $2`, planID, userID,
	).Scan(&fp.ID, &fp.FloorID, &fp.PlanData, &fp.CreatedAt, &fp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get floor plan: %w", err)
	}
	if fp.PlanData == nil {
		fp.PlanData = models.EmptyPlanData
	}
	return fp, nil
}
