package handlers_test

import (
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
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

type fakeCameraStore struct {
	cameras map[uuid.UUID]*models.Camera
}

func (f *fakeCameraStore) CreateCamera(_ context.Context, cam *models.Camera) error {
	cam.ID = uuid.New()
	return nil
}

func (f *fakeCameraStore) ListCameras(_ context.Context, _ uuid.UUID) ([]models.Camera, error) {
	out := make([]models.Camera, 0, len(f.cameras))
	for _, cam := range f.cameras {
		out = append(out, *cam)
	}
	return out, nil
}

func (f *fakeCameraStore) GetCamera(_ context.Context, userID, cameraID uuid.UUID) (*models.Camera, error) {
	cam, ok := f.cameras[cameraID]
	if !ok || cam.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return cam, nil
}

func (f *fakeCameraStore) UpdateCamera(_ context.Context, cam *models.Camera) error {
	if _, ok := f.cameras[cam.ID]; !ok {
		return storage.ErrNotFound
	}
	f.cameras[cam.ID] = cam
	return nil
}

func (f *fakeCameraStore) DeleteCamera(_ context.Context, userID, cameraID uuid.UUID) error {
	cam, ok := f.cameras[cameraID]
	if !ok || cam.UserID != userID {
		return storage.ErrNotFound
	}
	delete(f.cameras, cameraID)
	return nil
}

func cameraRouter(owner *testOwner, store *fakeCameraStore) http.Handler {
	h := handlers.NewCameraHandler(store, slog.Default())
	return newTestRouter(owner, func(g *gin.RouterGroup) {
		g.GET("/cameras/:id", h.Detail)
		g.DELETE("/cameras/:id", h.Delete)
	})
}

func TestCameraDetailSuppressesPrivateStream(t *testing.T) {
	owner := newTestOwner(t)
	cam := &models.Camera{
		ID:        uuid.New(),
		UserID:    owner.UserID,
		Name:      "Hallway",
		VideoURL:  "rtsp://cam.local/stream",
		IsPrivate: true,
	}
	r := cameraRouter(owner, &fakeCameraStore{cameras: map[uuid.UUID]*models.Camera{cam.ID: cam}})

	target := fmt.Sprintf("/v1/cameras/%s?username=%s", cam.ID, owner.Username)
	w := owner.request(t, r, http.MethodGet, target, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CameraDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.VideoURL)
	assert.True(t, resp.IsPrivate)
}

func TestCameraDetailIncludesPublicStream(t *testing.T) {
	owner := newTestOwner(t)
	cam := &models.Camera{
		ID:       uuid.New(),
		UserID:   owner.UserID,
		Name:     "Garden",
		VideoURL: "rtsp://cam.local/garden",
	}
	r := cameraRouter(owner, &fakeCameraStore{cameras: map[uuid.UUID]*models.Camera{cam.ID: cam}})

	target := fmt.Sprintf("/v1/cameras/%s?username=%s", cam.ID, owner.Username)
	w := owner.request(t, r, http.MethodGet, target, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CameraDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rtsp://cam.local/garden", resp.VideoURL)
}

func TestCameraDetailForeignCameraIs404(t *testing.T) {
	owner := newTestOwner(t)
	cam := &models.Camera{ID: uuid.New(), UserID: uuid.New(), Name: "Not yours"}
	r := cameraRouter(owner, &fakeCameraStore{cameras: map[uuid.UUID]*models.Camera{cam.ID: cam}})

	target := fmt.Sprintf("/v1/cameras/%s?username=%s", cam.ID, owner.Username)
	w := owner.request(t, r, http.MethodGet, target, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCameraDelete(t *testing.T) {
	owner := newTestOwner(t)
	cam := &models.Camera{ID: uuid.New(), UserID: owner.UserID, Name: "Hallway"}
	store := &fakeCameraStore{cameras: map[uuid.UUID]*models.Camera{cam.ID: cam}}
	r := cameraRouter(owner, store)

	target := fmt.Sprintf("/v1/cameras/%s?username=%s", cam.ID, owner.Username)
	w := owner.request(t, r, http.MethodDelete, target, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.cameras)

	// Second delete of the same camera.
	w = owner.request(t, r, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
