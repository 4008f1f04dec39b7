package handlers

import (
	"net/http"
	"time"

	"boqportal/models"
	"boqportal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoginHandler godoc
// @Summary      Login
// @Description  Verifies the password, opens a 24h session and returns an access token bound to it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.LoginRequest  true  "Credentials"
// @Success      200      {object}  models.LoginResponse
// @Failure      400      {object}  models.ErrorResponse
// @Failure      401      {object}  models.ErrorResponse
// @Failure      403      {object}  models.ErrorResponse
// @Router       /api/login [post]
func LoginHandler(sessions SessionStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginData models.LoginRequest
		if err := c.ShouldBindJSON(&loginData); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		user, err := sessions.GetUserByEmail(c.Request.Context(), loginData.Email)
		if err != nil || !utils.ValidatePassword(user.Password, loginData.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		ip := loginData.IP
		if ip == "" {
			ip = c.ClientIP()
		}

		now := time.Now()
		session := &models.Session{
			UserID:    user.ID,
			SessionID: uuid.NewString(),
			HostName:  user.Email,
			IPAddress: ip,
			Timestamp: now,
			ExpiresAt: now.Add(utils.AccessTokenTTL),
		}

		token, err := utils.GenerateJWT(user.Email, session.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		if err := sessions.SaveSession(c.Request.Context(), session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "details": err.Error()})
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxSessionKey, session)
		recordActivity(c, activity, "Auth", "Login", "User logged in", 0)

		c.JSON(http.StatusOK, models.LoginResponse{
			Message:     "User successfully logged in",
			AccessToken: token,
			Role:        user.RoleName,
			User: models.LoginUser{
				ID:       user.ID,
				Email:    user.Email,
				VendorID: user.VendorID,
			},
		})
	}
}

// LogoutHandler godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer token"
// @Success      200            {object}  models.MessageResponse
// @Failure      401            {object}  models.ErrorResponse
// @Router       /api/logout [post]
func LogoutHandler(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := sessions.DeleteSession(c.Request.Context(), session.SessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
	}
}
