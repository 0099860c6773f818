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
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

type fakeLogStore struct {
	feed          []storage.EventLogView
	gotFilter     storage.InvestigateFilter
	reclassifyErr error
	reclassified  *storage.ReclassifyResult
}

func (f *fakeLogStore) ListLogFeed(_ context.Context, _ uuid.UUID, _ models.EventType) ([]storage.EventLogView, error) {
	return f.feed, nil
}

func (f *fakeLogStore) Investigate(_ context.Context, _ uuid.UUID, filter storage.InvestigateFilter) ([]storage.EventLogView, error) {
	f.gotFilter = filter
	return f.feed, nil
}

func (f *fakeLogStore) Reclassify(_ context.Context, _, logID, newFamilyID uuid.UUID) (*storage.ReclassifyResult, error) {
	if f.reclassifyErr != nil {
		return nil, f.reclassifyErr
	}
	f.reclassified = &storage.ReclassifyResult{LogID: logID, NewPersonID: newFamilyID}
	return f.reclassified, nil
}

func logRouter(owner *testOwner, store *fakeLogStore) http.Handler {
	h := handlers.NewLogHandler(store, slog.Default())
	return newTestRouter(owner, func(g *gin.RouterGroup) {
		g.GET("/logs/family", h.FamilyFeed)
		g.GET("/logs/unwanted", h.UnwantedFeed)
		g.POST("/logs/investigate", h.Investigate)
		g.POST("/logs/:id/reclassify", h.Reclassify)
	})
}

func TestInvestigatePassesParsedFilter(t *testing.T) {
	owner := newTestOwner(t)
	store := &fakeLogStore{feed: []storage.EventLogView{}}
	r := logRouter(owner, store)

	camID := uuid.New()
	body, _ := json.Marshal(dto.InvestigateRequest{
		Type:         "Unwanted",
		CameraID:     camID.String(),
		StartingTime: "2025-03-01",
		EndingTime:   "2025-03-14 23:59",
	})
	w := owner.request(t, r, http.MethodPost, "/v1/logs/investigate?username="+owner.Username, bytes.NewReader(body))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, storage.EventKindUnwanted, store.gotFilter.Kind)
	require.NotNil(t, store.gotFilter.CameraID)
	assert.Equal(t, camID, *store.gotFilter.CameraID)
	require.NotNil(t, store.gotFilter.From)
	require.NotNil(t, store.gotFilter.To)
}

func TestInvestigateRejectsMalformedTime(t *testing.T) {
	owner := newTestOwner(t)
	r := logRouter(owner, &fakeLogStore{})

	body, _ := json.Marshal(dto.InvestigateRequest{StartingTime: "last tuesday"})
	w := owner.request(t, r, http.MethodPost, "/v1/logs/investigate?username="+owner.Username, bytes.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvestigateRejectsUnknownKind(t *testing.T) {
	owner := newTestOwner(t)
	r := logRouter(owner, &fakeLogStore{})

	body, _ := json.Marshal(dto.InvestigateRequest{Type: "Visitors"})
	w := owner.request(t, r, http.MethodPost, "/v1/logs/investigate?username="+owner.Username, bytes.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReclassifySuccess(t *testing.T) {
	owner := newTestOwner(t)
	store := &fakeLogStore{}
	r := logRouter(owner, store)

	logID := uuid.New()
	familyID := uuid.New()
	body, _ := json.Marshal(dto.ReclassifyRequest{NewFamilyID: familyID})

	target := fmt.Sprintf("/v1/logs/%s/reclassify?username=%s", logID, owner.Username)
	w := owner.request(t, r, http.MethodPost, target, bytes.NewReader(body))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ReclassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, logID, resp.LogID)
	assert.Equal(t, familyID, resp.NewPersonID)
}

func TestReclassifyUnknownLog(t *testing.T) {
	owner := newTestOwner(t)
	r := logRouter(owner, &fakeLogStore{reclassifyErr: storage.ErrNotFound})

	body, _ := json.Marshal(dto.ReclassifyRequest{NewFamilyID: uuid.New()})
	target := fmt.Sprintf("/v1/logs/%s/reclassify?username=%s", uuid.New(), owner.Username)
	w := owner.request(t, r, http.MethodPost, target, bytes.NewReader(body))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReclassifyTargetNotFamily(t *testing.T) {
	owner := newTestOwner(t)
	r := logRouter(owner, &fakeLogStore{
		reclassifyErr: fmt.Errorf("%w: target identity is not a family member", storage.ErrInvalidInput),
	})

	body, _ := json.Marshal(dto.ReclassifyRequest{NewFamilyID: uuid.New()})
	target := fmt.Sprintf("/v1/logs/%s/reclassify?username=%s", uuid.New(), owner.Username)
	w := owner.request(t, r, http.MethodPost, target, bytes.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReclassifyRequiresTarget(t *testing.T) {
	owner := newTestOwner(t)
	r := logRouter(owner, &fakeLogStore{})

	target := fmt.Sprintf("/v1/logs/%s/reclassify?username=%s", uuid.New(), owner.Username)
	w := owner.request(t, r, http.MethodPost, target, bytes.NewReader([]byte(`{}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
