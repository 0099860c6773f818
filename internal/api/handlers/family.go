package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

const maxPhotoBytes = 8 << 20 // per reference photo

// FamilyStore is the slice of the storage layer the family handlers need.
type FamilyStore interface {
	CreateFamilyMember(ctx context.Context, p *models.PersonIdentity, photoURLs []string) error
	ListFamilyMembers(ctx context.Context, userID uuid.UUID) ([]storage.FamilyMemberView, error)
}

// PhotoStore is the blob side: reference photos go in at registration time
// and come back out through the photo proxy.
type PhotoStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
}

type FamilyHandler struct {
	store  FamilyStore
	photos PhotoStore
	logger *slog.Logger
}

func NewFamilyHandler(store FamilyStore, photos PhotoStore, logger *slog.Logger) *FamilyHandler {
	return &FamilyHandler{store: store, photos: photos, logger: logger}
}

// Create registers a family member from a multipart form carrying the name,
// relationship and exactly three reference photos under the "photos" field.
// The photos are uploaded first; the identity row and photo records land in
// one transaction afterwards, so a failed upload never leaves a member
// without reference imagery.
func (h *FamilyHandler) Create(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	relationship := strings.TrimSpace(c.PostForm("relationship"))

	files := form.File["photos"]
	if len(files) != storage.FamilyMemberPhotosRequired {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("exactly %d photos required, got %d",
				storage.FamilyMemberPhotosRequired, len(files)),
		})
		return
	}

	memberKey := uuid.New()
	photoURLs := make([]string, 0, len(files))
	for i, fh := range files {
		key := fmt.Sprintf("family/%s/%s/%d%s", subject.UserID, memberKey, i, photoExt(fh))
		if err := h.uploadPhoto(c.Request.Context(), key, fh); err != nil {
			h.logger.Error("upload reference photo", "error", err, "key", key)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "photo upload failed"})
			return
		}
		photoURLs = append(photoURLs, key)
	}

	member := &models.PersonIdentity{
		UserID:       subject.UserID,
		Name:         name,
		Relationship: relationship,
	}
	if err := h.store.CreateFamilyMember(c.Request.Context(), member, photoURLs); err != nil {
		respondStoreError(c, err)
		return
	}

	h.logger.Info("family member registered",
		"person_id", member.ID, "user_id", subject.UserID, "photos", len(photoURLs))
	c.JSON(http.StatusCreated, dto.CreateFamilyMemberResponse{
		MemberID:    member.ID,
		Name:        member.Name,
		PhotosSaved: len(photoURLs),
	})
}

func (h *FamilyHandler) List(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	members, err := h.store.ListFamilyMembers(c.Request.Context(), subject.UserID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	out := make([]dto.FamilyMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.FamilyMemberResponse{
			ID:           m.ID,
			Name:         m.Name,
			Relationship: m.Relationship,
			PhotoURL:     m.PhotoURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"members": out})
}

// Photo streams a stored object back to its owner. Keys are namespaced per
// user, so the prefix check is the whole authorization.
func (h *FamilyHandler) Photo(c *gin.Context) {
	subject, ok := requireOwner(c)
	if !ok {
		return
	}

	key := c.Query("key")
	if key == "" || strings.Contains(key, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
		return
	}
	if !ownsKey(subject.UserID, key) {
		c.JSON(http.StatusForbidden, gin.H{"error": "verification failed"})
		return
	}

	data, err := h.photos.GetObject(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Data(http.StatusOK, contentTypeForKey(key), data)
}

func (h *FamilyHandler) uploadPhoto(ctx context.Context, key string, fh *multipart.FileHeader) error {
	if fh.Size > maxPhotoBytes {
		return fmt.Errorf("photo %s exceeds %d bytes", fh.Filename, maxPhotoBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	return h.photos.PutObject(ctx, key, data, contentTypeForKey(key))
}

// ownsKey checks that the object key sits under one of the owner's
// namespaces (family/<user>/... or snapshots/<user>/...).
func ownsKey(userID uuid.UUID, key string) bool {
	parts := strings.SplitN(key, "/", 3)
	return len(parts) == 3 && parts[1] == userID.String()
}

func photoExt(fh *multipart.FileHeader) string {
	ext := strings.ToLower(path.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	default:
		return ".jpg"
	}
}

func contentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
