package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether one backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueuePinger matches the message producer, whose connection check does not
// take a context.
type QueuePinger interface {
	Ping() error
}

type SystemHandler struct {
	db    Pinger
	blobs Pinger
	queue QueuePinger
}

func NewSystemHandler(db, blobs Pinger, queue QueuePinger) *SystemHandler {
	return &SystemHandler{db: db, blobs: blobs, queue: queue}
}

// Healthz reports process liveness only.
func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz checks every backing dependency and reports each one.
func (h *SystemHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if err := h.blobs.Ping(ctx); err != nil {
		checks["object_store"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["object_store"] = "ok"
	}

	if err := h.queue.Ping(); err != nil {
		checks["queue"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["queue"] = "ok"
	}

	c.JSON(status, checks)
}
