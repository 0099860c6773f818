package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/observability"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

// GraphStore is the slice of the storage layer the adjacency handlers need.
type GraphStore interface {
	GetNeighbors(ctx context.Context, userID, cameraID uuid.UUID) ([]uuid.UUID, error)
	GetGraph(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	ReplaceNetwork(ctx context.Context, userID, cameraID uuid.UUID, targets []uuid.UUID) (int, error)
}

type GraphHandler struct {
	store  GraphStore
	logger *slog.Logger
}

func NewGraphHandler(store GraphStore, logger *slog.Logger) *GraphHandler {
	return &GraphHandler{store: store, logger: logger}
}

// Neighbors lists the cameras adjacent to one camera. Unknown and foreign
// ids come back as an empty list, same as an isolated camera.
func (h *GraphHandler) Neighbors(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	cameraID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	neighbors, err := h.store.GetNeighbors(c.Request.Context(), subject.UserID, cameraID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NeighborsResponse{CameraID: cameraID, Neighbors: neighbors})
}

// Graph returns the full adjacency map for the owner's fleet.
func (h *GraphHandler) Graph(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	graph, err := h.store.GetGraph(c.Request.Context(), subject.UserID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	out := make(map[string][]uuid.UUID, len(graph))
	for id, neighbors := range graph {
		out[id.String()] = neighbors
	}
	c.JSON(http.StatusOK, dto.GraphResponse{Graph: out})
}

// ReplaceNetwork swaps the camera's whole neighbor set in one shot.
func (h *GraphHandler) ReplaceNetwork(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	cameraID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	var req dto.ReplaceNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.store.ReplaceNetwork(c.Request.Context(), subject.UserID, cameraID, req.TargetIDs)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	observability.NetworkReplacements.Inc()
	h.logger.Info("camera network replaced",
		"camera_id", cameraID, "user_id", subject.UserID, "count", count)
	c.JSON(http.StatusOK, dto.ReplaceNetworkResponse{CameraID: cameraID, Count: count})
}
