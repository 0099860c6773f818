package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

// FloorStore is the slice of the storage layer the floor handlers need.
type FloorStore interface {
	CreateFloor(ctx context.Context, f *models.Floor) error
	ListFloors(ctx context.Context, userID uuid.UUID) ([]models.Floor, error)
	CreateFloorPlan(ctx context.Context, userID, floorID uuid.UUID, planData json.RawMessage) (*models.FloorPlan, error)
	UpdateFloorPlan(ctx context.Context, userID, planID uuid.UUID, planData json.RawMessage) error
	GetFloorPlan(ctx context.Context, userID, planID uuid.UUID) (*models.FloorPlan, error)
}

type FloorHandler struct {
	store  FloorStore
	logger *slog.Logger
}

func NewFloorHandler(store FloorStore, logger *slog.Logger) *FloorHandler {
	return &FloorHandler{store: store, logger: logger}
}

func (h *FloorHandler) Create(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	var req dto.CreateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f := &models.Floor{UserID: subject.UserID, Title: req.Title, Description: req.Description}
	if err := h.store.CreateFloor(c.Request.Context(), f); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FloorResponse{ID: f.ID, Title: f.Title, Description: f.Description})
}

func (h *FloorHandler) List(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	floors, err := h.store.ListFloors(c.Request.Context(), subject.UserID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	out := make([]dto.FloorResponse, 0, len(floors))
	for _, f := range floors {
		out = append(out, dto.FloorResponse{ID: f.ID, Title: f.Title, Description: f.Description})
	}
	c.JSON(http.StatusOK, gin.H{"floors": out})
}

func (h *FloorHandler) CreatePlan(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	var req dto.CreateFloorPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fp, err := h.store.CreateFloorPlan(c.Request.Context(), subject.UserID, req.FloorID, req.PlanData)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FloorPlanResponse{ID: fp.ID, FloorID: fp.FloorID, PlanData: fp.PlanData})
}

func (h *FloorHandler) UpdatePlan(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	var req dto.UpdateFloorPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpdateFloorPlan(c.Request.Context(), subject.UserID, planID, req.PlanData); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan updated"})
}

func (h *FloorHandler) GetPlan(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	fp, err := h.store.GetFloorPlan(c.Request.Context(), subject.UserID, planID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FloorPlanResponse{ID: fp.ID, FloorID: fp.FloorID, PlanData: fp.PlanData})
}
