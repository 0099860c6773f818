package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
)

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, username, hashed_password, security_question, hashed_security_answer)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		u.Name, u.Username, u.HashedPassword, u.SecurityQuestion, u.HashedSecurityAnswer,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, username, hashed_password, security_question, hashed_security_answer, created_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Name, &u.Username, &u.HashedPassword,
		&u.SecurityQuestion, &u.HashedSecurityAnswer, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) UpdateUserPassword(ctx context.Context, username, hashedPassword string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET hashed_password = $1 WHERE username = $2`,
		hashedPassword, username)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
