package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
)

// Edges are undirected but stored as ordered pairs, so every read has to
// match the camera on either side. The direction-normalizing happens in this
// one query, used by both the neighbor and the whole-graph lookups.
const neighborQuery = `
	SELECT CASE WHEN camera_id_from = $1 THEN camera_id_to ELSE camera_id_from END
	FROM camera_links
	WHERE camera_id_from = $1 OR camera_id_to = $1`

// GetNeighbors returns every camera adjacent to cameraID. A camera that does
// not exist, is isolated, or belongs to another owner yields an empty slice;
// the read path does not reveal which of those it was.
func (s *PostgresStore) GetNeighbors(ctx context.Context, userID, cameraID uuid.UUID) ([]uuid.UUID, error) {
	var owner uuid.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM cameras WHERE id = $1`, cameraID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []uuid.UUID{}, nil
		}
		return nil, fmt.Errorf("check camera: %w", err)
	}
	if owner != userID {
		return []uuid.UUID{}, nil
	}

	rows, err := s.pool.Query(ctx, neighborQuery, cameraID)
	if err != nil {
		return nil, fmt.Errorf("get neighbors: %w", err)
	}
	defer rows.Close()

	neighbors := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan neighbor: %w", err)
		}
		neighbors = append(neighbors, id)
	}
	return neighbors, rows.Err()
}

// GetGraph returns the neighbor set of every camera the owner has. Cameras
// without edges are present with an empty set. Neighbor sets are computed
// from all edges touching the camera, without assuming both endpoints belong
// to the owner.
func (s *PostgresStore) GetGraph(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM cameras WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list owner cameras: %w", err)
	}
	defer rows.Close()

	var cameraIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan camera id: %w", err)
		}
		cameraIDs = append(cameraIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := s.pool.Query(ctx,
		`SELECT l.camera_id_from, l.camera_id_to
		 FROM camera_links l
		 JOIN cameras c ON c.id = l.camera_id_from OR c.id = l.camera_id_to
		 WHERE c.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list owner edges: %w", err)
	}
	defer edgeRows.Close()

	var edges []models.CameraEdge
	for edgeRows.Next() {
		var e models.CameraEdge
		if err := edgeRows.Scan(&e.FromID, &e.ToID); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, err
	}

	return neighborMap(cameraIDs, edges), nil
}

// ReplaceNetwork replaces every edge touching cameraID with one edge per
// target, as a single transaction. Self-links are silently dropped yet still
// count toward the returned total, which reflects the requested list, not
// the rows inserted. Targets outside the owner's fleet fail the whole call.
func (s *PostgresStore) ReplaceNetwork(ctx context.Context, userID, cameraID uuid.UUID, targets []uuid.UUID) (int, error) {
	cleaned := sanitizeTargets(cameraID, targets)

	err := s.withTx(ctx, func(tx pgx.Tx) error {
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

		if len(cleaned) > 0 {
			var owned int
			err := tx.QueryRow(ctx,
				`SELECT COUNT(*) FROM cameras WHERE id = ANY($1) AND user_id = $2`,
				cleaned, userID).Scan(&owned)
			if err != nil {
				return fmt.Errorf("check targets: %w", err)
			}
			if owned != len(cleaned) {
				return fmt.Errorf("%w: link target is not a camera of this owner", ErrInvalidInput)
			}
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM camera_links WHERE camera_id_from = $1 OR camera_id_to = $1`, cameraID); err != nil {
			return fmt.Errorf("delete old edges: %w", err)
		}

		for _, target := range cleaned {
			from, to := canonicalPair(cameraID, target)
			if _, err := tx.Exec(ctx,
				`INSERT INTO camera_links (camera_id_from, camera_id_to) VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`, from, to); err != nil {
				return fmt.Errorf("insert edge: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(targets), nil
}

// sanitizeTargets drops self-links and duplicates, preserving order.
func sanitizeTargets(cameraID uuid.UUID, targets []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(targets))
	cleaned := make([]uuid.UUID, 0, len(targets))
	for _, t := range targets {
		if t == cameraID {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}
	return cleaned
}

// canonicalPair orders an unordered camera pair so each edge has exactly one
// stored form.
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// neighborMap builds the per-camera neighbor sets from a flat edge list.
// Every camera in cameraIDs gets an entry, adjacency from either side of the
// pair; endpoints outside cameraIDs still show up as neighbors but get no
// key of their own.
func neighborMap(cameraIDs []uuid.UUID, edges []models.CameraEdge) map[uuid.UUID][]uuid.UUID {
	graph := make(map[uuid.UUID][]uuid.UUID, len(cameraIDs))
	owned := make(map[uuid.UUID]struct{}, len(cameraIDs))
	for _, id := range cameraIDs {
		graph[id] = []uuid.UUID{}
		owned[id] = struct{}{}
	}

	seen := make(map[models.CameraEdge]struct{}, len(edges))
	for _, e := range edges {
		from, to := canonicalPair(e.FromID, e.ToID)
		key := models.CameraEdge{FromID: from, ToID: to}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := owned[from]; ok {
			graph[from] = append(graph[from], to)
		}
		if _, ok := owned[to]; ok {
			graph[to] = append(graph[to], from)
		}
	}
	return graph
}
