package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"boqportal/models"
	"boqportal/storage"
	"boqportal/utils"

	"github.com/gin-gonic/gin"
)

// SessionStore is the user/session storage the auth handlers need.
type SessionStore interface {
	SaveSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserBySessionID(ctx context.Context, sessionID string) (*models.User, *models.Session, error)
}

// ActivityLogger records and lists the audit trail.
type ActivityLogger interface {
	SaveActivityLog(ctx context.Context, entry models.ActivityLog) error
	ListActivityLogs(ctx context.Context, limit, offset int) ([]models.ActivityLog, int, error)
}

// ObjectStore keeps uploaded documents.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

const (
	ctxUserKey    = "user"
	ctxSessionKey = "session"
)

func bearerToken(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader("Authorization"))
	token = strings.TrimPrefix(token, "Bearer ")
	return strings.TrimSpace(token)
}

// RequireSession resolves the bearer token to a live session and its user.
func RequireSession(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		sessionID, err := utils.SessionIDFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "details": err.Error()})
			return
		}

		user, session, err := sessions.GetUserBySessionID(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, storage.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate session", "details": err.Error()})
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxSessionKey, session)
		c.Next()
	}
}

// RequireRole lets the request through only for the given roles. Must run after RequireSession.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		for _, role := range roles {
			if strings.EqualFold(user.RoleName, role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func currentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*models.Session)
	return session
}

// recordActivity writes an audit row for the current user. Failures are logged, not returned.
func recordActivity(c *gin.Context, activity ActivityLogger, eventContext, eventName, description string, projectID int, affected ...string) {
	if activity == nil {
		return
	}
	entry := models.ActivityLog{
		CreatedAt:    time.Now(),
		EventContext: eventContext,
		EventName:    eventName,
		Description:  description,
		ProjectID:    projectID,
		IPAddress:    c.ClientIP(),
	}
	if user := currentUser(c); user != nil {
		entry.UserName = user.FullName()
		entry.HostName = user.Email
	}
	if session := currentSession(c); session != nil && session.IPAddress != "" {
		entry.IPAddress = session.IPAddress
	}
	if len(affected) > 0 {
		entry.AffectedUserName = affected[0]
	}
	if len(affected) > 1 {
		entry.AffectedUserEmail = affected[1]
	}
	if err := activity.SaveActivityLog(c.Request.Context(), entry); err != nil {
		log.Printf("failed to save activity log: %v", err)
	}
}
