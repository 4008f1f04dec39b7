package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"boqportal/repository"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondStoreError maps repository errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": what + " already exists"})
	case errors.Is(err, repository.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid status transition", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "details": err.Error()})
	}
}
