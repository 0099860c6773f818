package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
)

// FamilyMemberPhotosRequired is how many reference photos a family member is
// registered with. The first one becomes the primary/dashboard photo.
const FamilyMemberPhotosRequired = 3

// CreateFamilyMember inserts a FAMILY identity and its reference photos in
// one transaction. Exactly FamilyMemberPhotosRequired photo URLs must be
// provided.
func (s *PostgresStore) CreateFamilyMember(ctx context.Context, p *models.PersonIdentity, photoURLs []string) error {
	if len(photoURLs) != FamilyMemberPhotosRequired {
		return fmt.Errorf("%w: exactly %d photos required, got %d",
			ErrInvalidInput, FamilyMemberPhotosRequired, len(photoURLs))
	}

	p.PersonType = models.PersonTypeFamily

	return s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO persons (user_id, name, person_type, relationship)
			 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
			p.UserID, p.Name, p.PersonType, p.Relationship,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert family member: %w", err)
		}

		for i, url := range photoURLs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO person_photos (person_id, photo_url, is_primary) VALUES ($1, $2, $3)`,
				p.ID, url, i == 0); err != nil {
				return fmt.Errorf("insert photo: %w", err)
			}
		}
		return nil
	})
}

// FamilyMemberView is a family identity with its primary photo.
type FamilyMemberView struct {
	models.PersonIdentity
	PhotoURL string `json:"photo_url"`
}

func (s *PostgresStore) ListFamilyMembers(ctx context.Context, userID uuid.UUID) ([]FamilyMemberView, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.user_id, p.name, p.person_type, p.relationship, p.created_at,
		        COALESCE(pp.photo_url, '')
		 FROM persons p
		 LEFT JOIN person_photos pp ON pp.person_id = p.id AND pp.is_primary = TRUE
		 WHERE p.user_id = $1 AND p.person_type = $2
		 ORDER BY p.created_at`, userID, models.PersonTypeFamily)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	defer rows.Close()

	var members []FamilyMemberView
	for rows.Next() {
		var m FamilyMemberView
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.PersonType, &m.Relationship,
			&m.CreatedAt, &m.PhotoURL); err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *PostgresStore) CountFamilyMembers(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM persons WHERE user_id = $1 AND person_type = $2`,
		userID, models.PersonTypeFamily).Scan(&count)
	return count, err
}

// createUnwantedIdentity mints the implicit identity a detection needs when
// the subject is unrecognized. Runs inside the detection's transaction.
func createUnwantedIdentity(ctx context.Context, tx pgx.Tx, userID uuid.UUID, name string) (uuid.UUID, error) {
	if name == "" {
		name = "Unknown"
	}
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO persons (user_id, name, person_type) VALUES ($1, $2, $3) RETURNING id`,
		userID, name, models.PersonTypeUnwanted,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert unwanted identity: %w", err)
	}
	return id, nil
}
