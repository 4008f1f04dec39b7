package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"boqportal/models"
	"boqportal/repository"

	"github.com/gin-gonic/gin"
)

// ==================== CATEGORY OPERATIONS ====================

// CreateCategory creates a new category
// @Summary Create category
// @Description Create a new category in a project. Names are unique per project.
// @Tags Categories
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Category true "Category creation request"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/projects/{project_id}/categories [post]
func CreateCategory(projects repository.ProjectStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}

		var category models.Category
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category.Name = strings.TrimSpace(category.Name)
		if category.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name cannot be empty"})
			return
		}

		if _, err := projects.GetProject(c.Request.Context(), projectID); err != nil {
			respondStoreError(c, err, "Project")
			return
		}

		now := time.Now()
		row := &models.CategoryGorm{
			ID:        repository.GenerateRandomNumber(),
			Name:      category.Name,
			ProjectID: projectID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := projects.CreateCategory(c.Request.Context(), row); err != nil {
			respondStoreError(c, err, "Category with this name")
			return
		}

		recordActivity(c, activity, "Category", "Create", fmt.Sprintf("Created category %s", row.Name), projectID)

		created := row.ToCategory()
		c.JSON(http.StatusCreated, models.CategoryResponse{
			Success: true,
			Message: "Category created successfully",
			Data:    &created,
		})
	}
}

// ListCategories returns a project's categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.CategoryListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/projects/{project_id}/categories [get]
func ListCategories(projects repository.ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}

		rows, err := projects.ListCategories(c.Request.Context(), projectID)
		if err != nil {
			respondStoreError(c, err, "Category")
			return
		}

		categories := make([]models.Category, 0, len(rows))
		for _, row := range rows {
			categories = append(categories, row.ToCategory())
		}
		c.JSON(http.StatusOK, models.CategoryListResponse{
			Success: true,
			Message: "Success",
			Data:    categories,
		})
	}
}
