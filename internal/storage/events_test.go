package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetectedTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			value: "2025-03-14T09:30:00Z",
			want:  time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "date_and_time_no_zone",
			value: "2025-03-14 09:30:00",
			want:  time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "date_and_minutes",
			value: "2025-03-14 09:30",
			want:  time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "date_only",
			value: "2025-03-14",
			want:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day_first",
			value: "14/03/2025 09:30",
			want:  time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDetectedTime(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		for _, value := range []string{"yesterday", "14-03-2025x", "2025/03/14"} {
			_, err := parseDetectedTime(value)
			assert.ErrorIs(t, err, ErrInvalidInput, value)
		}
	})
}

func TestParseInvestigateFilter(t *testing.T) {
	camID := uuid.New()

	t.Run("defaults_to_all", func(t *testing.T) {
		f, err := ParseInvestigateFilter("", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, EventKindAll, f.Kind)
		assert.Nil(t, f.CameraID)
		assert.Nil(t, f.From)
		assert.Nil(t, f.To)
	})

	t.Run("literal_all_disables_filters", func(t *testing.T) {
		f, err := ParseInvestigateFilter("All", "All", "", "")
		require.NoError(t, err)
		assert.Equal(t, EventKindAll, f.Kind)
		assert.Nil(t, f.CameraID)
	})

	t.Run("full_filter", func(t *testing.T) {
		f, err := ParseInvestigateFilter("Unwanted", camID.String(), "2025-03-01", "2025-03-14 23:59")
		require.NoError(t, err)
		assert.Equal(t, EventKindUnwanted, f.Kind)
		require.NotNil(t, f.CameraID)
		assert.Equal(t, camID, *f.CameraID)
		require.NotNil(t, f.From)
		require.NotNil(t, f.To)
	})

	t.Run("unknown_kind_rejected", func(t *testing.T) {
		_, err := ParseInvestigateFilter("Visitors", "", "", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad_camera_id_rejected", func(t *testing.T) {
		_, err := ParseInvestigateFilter("", "not-a-uuid", "", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad_time_rejected", func(t *testing.T) {
		_, err := ParseInvestigateFilter("", "", "last tuesday", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBuildInvestigateWhere(t *testing.T) {
	userID := uuid.New()
	camID := uuid.New()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("owner_only", func(t *testing.T) {
		where, args := buildInvestigateWhere(userID, InvestigateFilter{Kind: EventKindAll})
		assert.Equal(t, "WHERE el.user_id = $1", where)
		assert.Equal(t, []any{userID}, args)
	})

	t.Run("all_filters_conjoined", func(t *testing.T) {
		where, args := buildInvestigateWhere(userID, InvestigateFilter{
			Kind:     EventKindFamily,
			CameraID: &camID,
			From:     &from,
			To:       &to,
		})
		assert.Equal(t,
			"WHERE el.user_id = $1 AND el.event_type = $2 AND el.camera_id = $3"+
				" AND el.detected_at >= $4 AND el.detected_at <= $5", where)
		assert.Len(t, args, 5)
	})

	t.Run("placeholders_stay_sequential_when_filters_skip", func(t *testing.T) {
		where, args := buildInvestigateWhere(userID, InvestigateFilter{
			Kind: EventKindUnwanted,
			To:   &to,
		})
		assert.Equal(t,
			"WHERE el.user_id = $1 AND el.event_type = $2 AND el.detected_at <= $3", where)
		assert.Len(t, args, 3)
	})
}
