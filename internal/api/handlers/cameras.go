package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

// CameraStore is the slice of the storage layer the camera handlers need.
type CameraStore interface {
	CreateCamera(ctx context.Context, cam *models.Camera) error
	ListCameras(ctx context.Context, userID uuid.UUID) ([]models.Camera, error)
	GetCamera(ctx context.Context, userID, cameraID uuid.UUID) (*models.Camera, error)
	UpdateCamera(ctx context.Context, cam *models.Camera) error
	DeleteCamera(ctx context.Context, userID, cameraID uuid.UUID) error
}

type CameraHandler struct {
	store  CameraStore
	logger *slog.Logger
}

func NewCameraHandler(store CameraStore, logger *slog.Logger) *CameraHandler {
	return &CameraHandler{store: store, logger: logger}
}

func (h *CameraHandler) Create(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	var req dto.CreateCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cam := &models.Camera{
		UserID:      subject.UserID,
		Name:        req.Name,
		Location:    req.Location,
		VideoURL:    req.VideoURL,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		FloorID:     req.FloorID,
	}
	if err := h.store.CreateCamera(c.Request.Context(), cam); err != nil {
		respondStoreError(c, err)
		return
	}

	h.logger.Info("camera registered", "camera_id", cam.ID, "user_id", subject.UserID)
	c.JSON(http.StatusCreated, cameraResponse(cam))
}

func (h *CameraHandler) List(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	cams, err := h.store.ListCameras(c.Request.Context(), subject.UserID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	out := make([]dto.CameraResponse, 0, len(cams))
	for i := range cams {
		out = append(out, cameraResponse(&cams[i]))
	}
	c.JSON(http.StatusOK, gin.H{"cameras": out})
}

// Detail returns a single camera including its stream address. Private
// cameras come back without the video URL; the flag stays visible so the
// client can explain why playback is unavailable.
func (h *CameraHandler) Detail(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	cameraID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	cam, err := h.store.GetCamera(c.Request.Context(), subject.UserID, cameraID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	resp := dto.CameraDetailResponse{
		ID:          cam.ID,
		Name:        cam.Name,
		Location:    cam.Location,
		Description: cam.Description,
		IsPrivate:   cam.IsPrivate,
		FloorID:     cam.FloorID,
	}
	if !cam.IsPrivate {
		resp.VideoURL = cam.VideoURL
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CameraHandler) Update(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	cameraID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	var req dto.UpdateCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cam := &models.Camera{
		ID:          cameraID,
		UserID:      subject.UserID,
		Name:        req.Name,
		Location:    req.Location,
		VideoURL:    req.VideoURL,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		FloorID:     req.FloorID,
	}
	if err := h.store.UpdateCamera(c.Request.Context(), cam); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "camera updated"})
}

func (h *CameraHandler) Delete(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	cameraID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	if err := h.store.DeleteCamera(c.Request.Context(), subject.UserID, cameraID); err != nil {
		respondStoreError(c, err)
		return
	}

	h.logger.Info("camera deleted", "camera_id", cameraID, "user_id", subject.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "camera deleted"})
}

func cameraResponse(cam *models.Camera) dto.CameraResponse {
	return dto.CameraResponse{
		ID:          cam.ID,
		Name:        cam.Name,
		Location:    cam.Location,
		Description: cam.Description,
		IsPrivate:   cam.IsPrivate,
		FloorID:     cam.FloorID,
		CreatedAt:   cam.CreatedAt.Format(timeFormat),
	}
}
