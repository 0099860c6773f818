package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const subjectKey = "auth.subject"

// Verifier resolves a bearer token to a subject.
type Verifier interface {
	Verify(token string) (*Subject, error)
}

// Middleware validates the Authorization bearer token and stores the
// verified subject in the request context. Handlers must still compare the
// claimed owner against the subject; a valid token for the wrong user is an
// authorization failure, not an authentication one.
func Middleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "malformed authorization header",
			})
			return
		}

		subject, err := verifier.Verify(token)
		if err != nil {
			msg := "could not validate credentials"
			if errors.Is(err, ErrTokenExpired) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// SubjectFrom returns the verified subject stored by Middleware.
func SubjectFrom(c *gin.Context) (*Subject, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return nil, false
	}
	subject, ok := v.(*Subject)
	return subject, ok
}
