package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/observability"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

// LogStore is the slice of the storage layer the event-log handlers need.
type LogStore interface {
	ListLogFeed(ctx context.Context, userID uuid.UUID, eventType models.EventType) ([]storage.EventLogView, error)
	Investigate(ctx context.Context, userID uuid.UUID, f storage.InvestigateFilter) ([]storage.EventLogView, error)
	Reclassify(ctx context.Context, userID, logID, newFamilyID uuid.UUID) (*storage.ReclassifyResult, error)
}

type LogHandler struct {
	store  LogStore
	logger *slog.Logger
}

func NewLogHandler(store LogStore, logger *slog.Logger) *LogHandler {
	return &LogHandler{store: store, logger: logger}
}

func (h *LogHandler) FamilyFeed(c *gin.Context) {
	h.feed(c, models.EventTypeFamilyDetected)
}

func (h *LogHandler) UnwantedFeed(c *gin.Context) {
	h.feed(c, models.EventTypeUnwantedDetected)
}

func (h *LogHandler) feed(c *gin.Context, eventType models.EventType) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	logs, err := h.store.ListLogFeed(c.Request.Context(), subject.UserID, eventType)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Investigate runs the filtered query. All filters are conjunctive; any
// malformed filter value rejects the whole request before the query runs.
func (h *LogHandler) Investigate(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	var req dto.InvestigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := storage.ParseInvestigateFilter(req.Type, req.CameraID, req.StartingTime, req.EndingTime)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	logs, err := h.store.Investigate(c.Request.Context(), subject.UserID, filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Reclassify re-labels a log's subject as an existing family member and
// lets the store garbage-collect the replaced identity when it was the
// identity's last reference.
func (h *LogHandler) Reclassify(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}
	logID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	var req dto.ReclassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.store.Reclassify(c.Request.Context(), subject.UserID, logID, req.NewFamilyID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	observability.Reclassifications.Inc()
	if res.IdentityCollected {
		observability.IdentitiesCollected.Inc()
	}
	h.logger.Info("log reclassified",
		"log_id", res.LogID, "new_person_id", res.NewPersonID,
		"identity_collected", res.IdentityCollected, "user_id", subject.UserID)
	c.JSON(http.StatusOK, dto.ReclassifyResponse{LogID: res.LogID, NewPersonID: res.NewPersonID})
}
