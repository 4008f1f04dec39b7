package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"boqportal/models"
	"boqportal/repository"
	"boqportal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Comparer produces comparison tables; services.ComparisonService in production.
type Comparer interface {
	Compare(ctx context.Context, projectID int, category string) (services.ComparisonResult, error)
}

// titleCase is safe for concurrent use; a cases.Caser is not.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// displayStatus turns UNDER_REVIEW into "Under Review".
func displayStatus(status string) string {
	return titleCase(strings.ReplaceAll(strings.ToLower(status), "_", " "))
}

func categoryLabel(category string) string {
	if category == "" {
		return "All categories"
	}
	return category
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func exportFileName(projectID int, category, ext string) string {
	name := fmt.Sprintf("comparison_%d", projectID)
	if category != "" {
		name += "_" + strings.Trim(unsafeFileChars.ReplaceAllString(category, "_"), "_")
	}
	return name + "." + ext
}

// loadComparison resolves the project and computes its table for ?category=.
// It writes the error response itself and returns false on failure.
func loadComparison(c *gin.Context, projects repository.ProjectStore, comparer Comparer) (*models.ProjectGorm, services.ComparisonResult, bool) {
	projectID, ok := parseIDParam(c, "project_id")
	if !ok {
		return nil, services.ComparisonResult{}, false
	}
	project, err := projects.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err, "Project")
		return nil, services.ComparisonResult{}, false
	}

	category := c.Query("category")
	result, err := comparer.Compare(c.Request.Context(), projectID, category)
	if err != nil {
		log.Printf("[Comparison] project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build comparison", "details": err.Error()})
		return nil, services.ComparisonResult{}, false
	}
	return project, result, true
}

// GetComparison godoc
// @Summary      Compare vendor quotes
// @Description  Aligns every performa of the category line by line and ranks vendors by declared total. Omit category to compare every performa of the project.
// @Tags         comparison
// @Produce      json
// @Param        project_id  path      int     true   "Project ID"
// @Param        category    query     string  false  "Effective category (exact match)"
// @Success      200         {object}  models.ComparisonResponse
// @Failure      404         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id}/comparison [get]
func GetComparison(projects repository.ProjectStore, comparer Comparer) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, result, ok := loadComparison(c, projects, comparer)
		if !ok {
			return
		}

		resp := models.ComparisonResponse{
			ProjectID:           project.ProjectID,
			ProjectName:         project.Name,
			Currency:            project.Currency,
			AvailableCategories: result.AvailableCategories,
			Table:               result.Table,
		}
		if result.Table.IsEmpty() {
			resp.Message = fmt.Sprintf("No quotes found for %s", categoryLabel(result.Table.Category))
		}
		c.JSON(http.StatusOK, resp)
	}
}
