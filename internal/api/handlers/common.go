package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/auth"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// requireOwner checks that the claimed owner (username query parameter)
// matches the verified token subject. A valid token presented for someone
// else's data is an authorization failure, not an authentication one.
func requireOwner(c *gin.Context) (*auth.Subject, bool) {
	subject, ok := auth.SubjectFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return nil, false
	}

	claimed := c.Query("username")
	if claimed == "" || claimed != subject.Username {
		c.JSON(http.StatusForbidden, gin.H{"error": "verification failed"})
		return nil, false
	}

	return subject, true
}

// respondStoreError maps storage sentinel errors onto HTTP statuses. Unknown
// errors become a generic internal error so no partial-transaction detail
// leaks to the caller.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, storage.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
