package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"boqportal/models"
	"boqportal/repository"

	"github.com/gin-gonic/gin"
)

func validateProjectInput(req *models.ProjectRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.New("project name cannot be empty")
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = "INR"
	}
	if len(req.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	return nil
}

// CreateProject godoc
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request  body      models.ProjectRequest  true  "Project"
// @Success      201      {object}  models.ProjectGorm
// @Failure      400      {object}  models.ErrorResponse
// @Router       /api/projects [post]
func CreateProject(projects repository.ProjectStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := validateProjectInput(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		project := &models.ProjectGorm{
			ProjectID:   repository.GenerateRandomNumber(),
			Name:        req.Name,
			Description: req.Description,
			Location:    req.Location,
			Currency:    req.Currency,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if user := currentUser(c); user != nil {
			project.CreatedBy = user.FullName()
		}

		if err := projects.CreateProject(c.Request.Context(), project); err != nil {
			respondStoreError(c, err, "Project")
			return
		}

		recordActivity(c, activity, "Project", "Create", fmt.Sprintf("Created project %s", project.Name), project.ProjectID)
		c.JSON(http.StatusCreated, project)
	}
}

// ListProjects godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   models.ProjectGorm
// @Router       /api/projects [get]
func ListProjects(projects repository.ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := projects.ListProjects(c.Request.Context())
		if err != nil {
			respondStoreError(c, err, "Project")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetProject godoc
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        project_id  path      int  true  "Project ID"
// @Success      200         {object}  models.ProjectGorm
// @Failure      404         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id} [get]
func GetProject(projects repository.ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}
		project, err := projects.GetProject(c.Request.Context(), projectID)
		if err != nil {
			respondStoreError(c, err, "Project")
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// DeleteProject godoc
// @Summary      Delete project
// @Tags         projects
// @Produce      json
// @Param        project_id  path      int  true  "Project ID"
// @Success      200         {object}  models.MessageResponse
// @Failure      404         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id} [delete]
func DeleteProject(projects repository.ProjectStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}
		project, err := projects.GetProject(c.Request.Context(), projectID)
		if err != nil {
			respondStoreError(c, err, "Project")
			return
		}
		if err := projects.DeleteProject(c.Request.Context(), projectID); err != nil {
			respondStoreError(c, err, "Project")
			return
		}

		recordActivity(c, activity, "Project", "Delete", fmt.Sprintf("Deleted project %s", project.Name), projectID)
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Project deleted successfully"})
	}
}
