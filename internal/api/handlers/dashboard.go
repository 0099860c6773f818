package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
)

// DashboardStore is the slice of the storage layer the dashboard needs.
type DashboardStore interface {
	GetDashboardSummary(ctx context.Context, userID uuid.UUID) (*storage.DashboardSummary, error)
}

type DashboardHandler struct {
	store DashboardStore
}

func NewDashboardHandler(store DashboardStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	sum, err := h.store.GetDashboardSummary(c.Request.Context(), subject.UserID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
