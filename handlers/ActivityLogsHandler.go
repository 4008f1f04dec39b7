package handlers

import (
	"math"
	"net/http"
	"strconv"

	"boqportal/models"

	"github.com/gin-gonic/gin"
)

const maxLogPageSize = 100

// GetActivityLogsHandler godoc
// @Summary      Get activity logs
// @Tags         activity-logs
// @Produce      json
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Limit"
// @Success      200    {object}  models.ActivityLogPage
// @Router       /api/logs [get]
func GetActivityLogsHandler(activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}
		if limit > maxLogPageSize {
			limit = maxLogPageSize
		}

		offset := (page - 1) * limit

		logs, totalRecords, err := activity.ListActivityLogs(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching logs", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.ActivityLogPage{
			Data:         logs,
			Page:         page,
			Limit:        limit,
			TotalRecords: totalRecords,
			TotalPages:   int(math.Ceil(float64(totalRecords) / float64(limit))),
		})
	}
}
