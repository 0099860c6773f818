package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
)

func TestSanitizeTargets(t *testing.T) {
	cam := uuid.New()
	a := uuid.New()
	b := uuid.New()

	tests := []struct {
		name    string
		targets []uuid.UUID
		want    []uuid.UUID
	}{
		{
			name:    "empty",
			targets: []uuid.UUID{},
			want:    []uuid.UUID{},
		},
		{
			name:    "drops_self_link",
			targets: []uuid.UUID{a, cam, b},
			want:    []uuid.UUID{a, b},
		},
		{
			name:    "drops_duplicates_keeps_order",
			targets: []uuid.UUID{b, a, b, a},
			want:    []uuid.UUID{b, a},
		},
		{
			name:    "only_self_links",
			targets: []uuid.UUID{cam, cam},
			want:    []uuid.UUID{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeTargets(cam, tt.targets))
		})
	}
}

func TestCanonicalPair(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	f1, t1 := canonicalPair(a, b)
	f2, t2 := canonicalPair(b, a)

	// One stored form per unordered pair, whichever way it arrives.
	assert.Equal(t, f1, f2)
	assert.Equal(t, t1, t2)
	assert.Equal(t, a, f1)
	assert.Equal(t, b, t1)
}

func TestNeighborMap(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	t.Run("every_camera_gets_an_entry", func(t *testing.T) {
		graph := neighborMap([]uuid.UUID{a, b, c}, nil)

		assert.Len(t, graph, 3)
		assert.Equal(t, []uuid.UUID{}, graph[a])
		assert.Equal(t, []uuid.UUID{}, graph[b])
		assert.Equal(t, []uuid.UUID{}, graph[c])
	})

	t.Run("edge_is_symmetric", func(t *testing.T) {
		graph := neighborMap([]uuid.UUID{a, b, c},
			[]models.CameraEdge{{FromID: a, ToID: b}})

		assert.Equal(t, []uuid.UUID{b}, graph[a])
		assert.Equal(t, []uuid.UUID{a}, graph[b])
		assert.Equal(t, []uuid.UUID{}, graph[c])
	})

	t.Run("duplicate_rows_collapse", func(t *testing.T) {
		graph := neighborMap([]uuid.UUID{a, b},
			[]models.CameraEdge{
				{FromID: a, ToID: b},
				{FromID: b, ToID: a},
			})

		assert.Len(t, graph[a], 1)
		assert.Len(t, graph[b], 1)
	})

	t.Run("foreign_endpoint_has_no_key", func(t *testing.T) {
		outside := uuid.New()
		graph := neighborMap([]uuid.UUID{a},
			[]models.CameraEdge{{FromID: a, ToID: outside}})

		assert.Equal(t, []uuid.UUID{outside}, graph[a])
		_, ok := graph[outside]
		assert.False(t, ok)
	})
}
