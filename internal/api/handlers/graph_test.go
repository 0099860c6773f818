package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/api/handlers"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

type fakeGraphStore struct {
	neighbors    map[uuid.UUID][]uuid.UUID
	graph        map[uuid.UUID][]uuid.UUID
	replaceErr   error
	replaceCount int
	gotTargets   []uuid.UUID
}

func (f *fakeGraphStore) GetNeighbors(_ context.Context, _, cameraID uuid.UUID) ([]uuid.UUID, error) {
	if n, ok := f.neighbors[cameraID]; ok {
		return n, nil
	}
	return []uuid.UUID{}, nil
}

func (f *fakeGraphStore) GetGraph(_ context.Context, _ uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	return f.graph, nil
}

func (f *fakeGraphStore) ReplaceNetwork(_ context.Context, _, _ uuid.UUID, targets []uuid.UUID) (int, error) {
	if f.replaceErr != nil {
		return 0, f.replaceErr
	}
	f.gotTargets = targets
	return f.replaceCount, nil
}

func graphRouter(owner *testOwner, store *fakeGraphStore) http.Handler {
	h := handlers.NewGraphHandler(store, slog.Default())
	return newTestRouter(owner, func(g *gin.RouterGroup) {
		g.GET("/cameras/:id/network", h.Neighbors)
		g.PUT("/cameras/:id/network", h.ReplaceNetwork)
		g.GET("/graph", h.Graph)
	})
}

func TestNeighborsEmptyForUnknownCamera(t *testing.T) {
	owner := newTestOwner(t)
	r := graphRouter(owner, &fakeGraphStore{neighbors: map[uuid.UUID][]uuid.UUID{}})

	target := fmt.Sprintf("/v1/cameras/%s/network?username=%s", uuid.New(), owner.Username)
	w := owner.request(t, r, http.MethodGet, target, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.NeighborsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []uuid.UUID{}, resp.Neighbors)
}

func TestNeighborsRejectsWrongOwner(t *testing.T) {
	owner := newTestOwner(t)
	r := graphRouter(owner, &fakeGraphStore{})

	target := fmt.Sprintf("/v1/cameras/%s/network?username=somebody-else", uuid.New())
	w := owner.request(t, r, http.MethodGet, target, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNeighborsRejectsBadCameraID(t *testing.T) {
	owner := newTestOwner(t)
	r := graphRouter(owner, &fakeGraphStore{})

	w := owner.request(t, r, http.MethodGet, "/v1/cameras/not-a-uuid/network?username="+owner.Username, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplaceNetworkReturnsRequestedCount(t *testing.T) {
	owner := newTestOwner(t)
	store := &fakeGraphStore{replaceCount: 3}
	r := graphRouter(owner, store)

	cameraID := uuid.New()
	targets := []uuid.UUID{uuid.New(), uuid.New(), cameraID}
	body, _ := json.Marshal(dto.ReplaceNetworkRequest{TargetIDs: targets})

	target := fmt.Sprintf("/v1/cameras/%s/network?username=%s", cameraID, owner.Username)
	w := owner.request(t, r, http.MethodPut, target, bytes.NewReader(body))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ReplaceNetworkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, cameraID, resp.CameraID)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, targets, store.gotTargets)
}

func TestReplaceNetworkMissingCamera(t *testing.T) {
	owner := newTestOwner(t)
	r := graphRouter(owner, &fakeGraphStore{replaceErr: storage.ErrNotFound})

	body, _ := json.Marshal(dto.ReplaceNetworkRequest{TargetIDs: []uuid.UUID{uuid.New()}})
	target := fmt.Sprintf("/v1/cameras/%s/network?username=%s", uuid.New(), owner.Username)
	w := owner.request(t, r, http.MethodPut, target, bytes.NewReader(body))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceNetworkForeignTarget(t *testing.T) {
	owner := newTestOwner(t)
	r := graphRouter(owner, &fakeGraphStore{
		replaceErr: fmt.Errorf("%w: link target is not a camera of this owner", storage.ErrInvalidInput),
	})

	body, _ := json.Marshal(dto.ReplaceNetworkRequest{TargetIDs: []uuid.UUID{uuid.New()}})
	target := fmt.Sprintf("/v1/cameras/%s/network?username=%s", uuid.New(), owner.Username)
	w := owner.request(t, r, http.MethodPut, target, bytes.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGraphSerializesAllCameras(t *testing.T) {
	owner := newTestOwner(t)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	r := graphRouter(owner, &fakeGraphStore{graph: map[uuid.UUID][]uuid.UUID{
		a: {b},
		b: {a},
		c: {},
	}})

	w := owner.request(t, r, http.MethodGet, "/v1/graph?username="+owner.Username, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.GraphResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Graph, 3)
	assert.Equal(t, []uuid.UUID{b}, resp.Graph[a.String()])
	assert.Equal(t, []uuid.UUID{}, resp.Graph[c.String()])
}

func TestGraphRequiresToken(t *testing.T) {
	owner := newTestOwner(t)
	r := graphRouter(owner, &fakeGraphStore{})

	req, _ := http.NewRequest(http.MethodGet, "/v1/graph?username="+owner.Username, nil)
	w := newRecorder(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
