package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"boqportal/models"
	"boqportal/repository"
	"boqportal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// reviewStatuses are the statuses an admin may set by hand. EXPIRED is set by the nightly job.
var reviewStatuses = map[string]bool{
	models.PerformaUnderReview: true,
	models.PerformaApproved:    true,
	models.PerformaRejected:    true,
}

var maxLineItemAmount = decimal.New(1, models.AmountPrecision-models.AmountScale)

// buildLineItems validates submitted line items. Amounts must fit the stored
// column exactly; anything Postgres would round or reject is refused here.
func buildLineItems(items []models.PerformaLineItemRequest) ([]models.PerformaLineItemGorm, error) {
	out := make([]models.PerformaLineItemGorm, 0, len(items))
	for i, item := range items {
		if !item.Amount.Given {
			return nil, fmt.Errorf("line_items[%d]: amount is required", i)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(item.Amount.Text))
		if err != nil {
			return nil, fmt.Errorf("line_items[%d]: amount %q is not a number", i, item.Amount.Text)
		}
		if amount.Exponent() < -models.AmountScale {
			if !amount.Equal(amount.Truncate(models.AmountScale)) {
				return nil, fmt.Errorf("line_items[%d]: amount %q has more than %d decimal places", i, item.Amount.Text, models.AmountScale)
			}
			amount = amount.Truncate(models.AmountScale)
		}
		if amount.Abs().GreaterThanOrEqual(maxLineItemAmount) {
			return nil, fmt.Errorf("line_items[%d]: amount %q is too large", i, item.Amount.Text)
		}
		var seq *int
		if item.SequenceNumber != nil {
			n := *item.SequenceNumber
			seq = &n
		}
		out = append(out, models.PerformaLineItemGorm{
			Position:       i,
			SequenceNumber: seq,
			Description:    item.Description,
			Amount:         amount,
		})
	}
	return out, nil
}

// canAccessPerforma reports whether user may read or modify p.
func canAccessPerforma(user *models.User, p *models.PerformaGorm) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || (user.VendorID != 0 && user.VendorID == p.VendorID)
}

// SubmitPerforma godoc
// @Summary      Submit performa
// @Description  Files a vendor quote against a project. total_amount is kept exactly as sent; line item amounts must be numeric.
// @Tags         performas
// @Accept       json
// @Produce      json
// @Param        project_id  path      int                           true  "Project ID"
// @Param        request     body      models.PerformaSubmitRequest  true  "Performa"
// @Success      201         {object}  models.PerformaGorm
// @Failure      400         {object}  models.ErrorResponse
// @Failure      403         {object}  models.ErrorResponse
// @Failure      404         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id}/performas [post]
func SubmitPerforma(projects repository.ProjectStore, performas repository.PerformaStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}

		var req models.PerformaSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		user := currentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		vendorID := req.VendorID
		if !user.IsAdmin() {
			if user.VendorID == 0 || (vendorID != 0 && vendorID != user.VendorID) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Vendors may only submit their own performas"})
				return
			}
			vendorID = user.VendorID
		}
		if vendorID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vendor_id is required"})
			return
		}
		if !req.TotalAmount.Given {
			c.JSON(http.StatusBadRequest, gin.H{"error": "total_amount is required"})
			return
		}

		lineItems, err := buildLineItems(req.LineItems)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line item", "details": err.Error()})
			return
		}

		ctx := c.Request.Context()
		project, err := projects.GetProject(ctx, projectID)
		if err != nil {
			respondStoreError(c, err, "Project")
			return
		}
		vendor, err := projects.GetVendor(ctx, vendorID)
		if err != nil {
			respondStoreError(c, err, "Vendor")
			return
		}

		currency := strings.ToUpper(strings.TrimSpace(req.Currency))
		if currency == "" {
			currency = project.Currency
		}

		now := time.Now()
		p := &models.PerformaGorm{
			ID:          repository.GenerateRandomNumber(),
			Reference:   repository.GeneratePerformaReference(),
			ProjectID:   projectID,
			VendorID:    vendor.VendorID,
			VendorName:  vendor.Name,
			VendorEmail: vendor.Email,
			TotalAmount: req.TotalAmount.Text,
			Currency:    currency,
			Status:      models.PerformaPending,
			ValidUntil:  req.ValidUntil,
			Remarks:     req.Remarks,
			SubmittedBy: user.FullName(),
			SubmittedAt: now,
			UpdatedAt:   now,
			LineItems:   lineItems,
		}
		if req.Category != nil {
			if name := strings.TrimSpace(*req.Category); name != "" {
				p.Category = &name
			}
		}

		if err := performas.CreatePerforma(ctx, p); err != nil {
			respondStoreError(c, err, "Performa")
			return
		}

		recordActivity(c, activity, "Performa", "Submit",
			fmt.Sprintf("Submitted performa %s (%s) total %s", p.Reference, p.EffectiveCategory(), p.TotalAmount),
			projectID, vendor.Name, vendor.Email)
		c.JSON(http.StatusCreated, p)
	}
}

// ListPerformas godoc
// @Summary      List performas
// @Description  Admins see every performa of the project, vendors only their own
// @Tags         performas
// @Produce      json
// @Param        project_id  path      int     true   "Project ID"
// @Param        status      query     string  false  "Status filter"
// @Param        category    query     string  false  "Effective category filter"
// @Success      200         {array}   models.PerformaGorm
// @Failure      400         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id}/performas [get]
func ListPerformas(performas repository.PerformaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}

		filter := repository.PerformaFilter{
			Status:   strings.ToUpper(strings.TrimSpace(c.Query("status"))),
			Category: c.Query("category"),
		}
		if filter.Status != "" && !models.IsValidPerformaStatus(filter.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		if user := currentUser(c); user != nil && !user.IsAdmin() {
			if user.VendorID == 0 {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
			filter.VendorID = user.VendorID
		}

		list, err := performas.ListPerformas(c.Request.Context(), projectID, filter)
		if err != nil {
			respondStoreError(c, err, "Performa")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// loadAccessiblePerforma fetches the :id performa and checks the caller may see it.
func loadAccessiblePerforma(c *gin.Context, performas repository.PerformaStore) (*models.PerformaGorm, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	p, err := performas.GetPerforma(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Performa")
		return nil, false
	}
	if !canAccessPerforma(currentUser(c), p) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil, false
	}
	return p, true
}

// GetPerforma godoc
// @Summary      Get performa
// @Tags         performas
// @Produce      json
// @Param        id   path      int  true  "Performa ID"
// @Success      200  {object}  models.PerformaGorm
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/performas/{id} [get]
func GetPerforma(performas repository.PerformaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := loadAccessiblePerforma(c, performas)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// DeletePerforma godoc
// @Summary      Delete performa
// @Tags         performas
// @Produce      json
// @Param        id   path      int  true  "Performa ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/performas/{id} [delete]
func DeletePerforma(performas repository.PerformaStore, objects ObjectStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := loadAccessiblePerforma(c, performas)
		if !ok {
			return
		}
		if err := performas.DeletePerforma(c.Request.Context(), p.ID); err != nil {
			respondStoreError(c, err, "Performa")
			return
		}
		if p.FileKey != nil && objects != nil {
			if err := objects.Delete(c.Request.Context(), *p.FileKey); err != nil {
				log.Printf("failed to delete attachment of performa %d: %v", p.ID, err)
			}
		}

		recordActivity(c, activity, "Performa", "Delete", fmt.Sprintf("Deleted performa %s", p.Reference), p.ProjectID, p.VendorName, p.VendorEmail)
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Performa deleted successfully"})
	}
}

// UploadPerformaFile godoc
// @Summary      Attach performa document
// @Tags         performas
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "Performa ID"
// @Param        file  formData  file  true  "Signed performa document"
// @Success      200   {object}  models.PerformaGorm
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      413   {object}  models.ErrorResponse
// @Router       /api/performas/{id}/file [post]
func UploadPerformaFile(performas repository.PerformaStore, objects ObjectStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := loadAccessiblePerforma(c, performas)
		if !ok {
			return
		}

		file, ok := uploadFormFile(c, objects, p.ProjectID, "performas")
		if !ok {
			return
		}

		updated, err := performas.AttachPerformaFile(c.Request.Context(), p.ID, file.Name, file.Key, file.URL)
		if err != nil {
			discardUpload(context.WithoutCancel(c.Request.Context()), objects, file.Key)
			respondStoreError(c, err, "Performa")
			return
		}
		if p.FileKey != nil && *p.FileKey != file.Key {
			if err := objects.Delete(c.Request.Context(), *p.FileKey); err != nil {
				log.Printf("failed to delete previous attachment of performa %d: %v", p.ID, err)
			}
		}

		recordActivity(c, activity, "Performa", "Attach", fmt.Sprintf("Attached %s to performa %s", file.Name, p.Reference), p.ProjectID)
		c.JSON(http.StatusOK, updated)
	}
}

// UpdatePerformaStatus godoc
// @Summary      Review performa
// @Description  PENDING may move to UNDER_REVIEW, APPROVED or REJECTED; UNDER_REVIEW to APPROVED or REJECTED. Final statuses cannot change.
// @Tags         performas
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Performa ID"
// @Param        request  body      models.PerformaStatusRequest  true  "New status"
// @Success      200      {object}  models.PerformaGorm
// @Failure      400      {object}  models.ErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Failure      409      {object}  models.ErrorResponse
// @Router       /api/performas/{id}/status [put]
func UpdatePerformaStatus(projects repository.ProjectStore, performas repository.PerformaStore, notifier services.Notifier, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req models.PerformaStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		status := strings.ToUpper(strings.TrimSpace(req.Status))
		if !reviewStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of UNDER_REVIEW, APPROVED, REJECTED"})
			return
		}

		reviewer := ""
		if user := currentUser(c); user != nil {
			reviewer = user.FullName()
		}

		ctx := c.Request.Context()
		updated, err := performas.UpdatePerformaStatus(ctx, id, status, reviewer, strings.TrimSpace(req.Remarks), time.Now())
		if err != nil {
			respondStoreError(c, err, "Performa")
			return
		}

		if notifier != nil && (status == models.PerformaApproved || status == models.PerformaRejected) {
			projectName := ""
			if project, err := projects.GetProject(ctx, updated.ProjectID); err == nil {
				projectName = project.Name
			}
			if err := notifier.NotifyPerformaStatus(*updated, projectName); err != nil {
				log.Printf("failed to notify vendor about performa %s: %v", updated.Reference, err)
			}
		}

		recordActivity(c, activity, "Performa", displayStatus(status),
			fmt.Sprintf("Performa %s (%s) set to %s", updated.Reference, updated.EffectiveCategory(), status),
			updated.ProjectID, updated.VendorName, updated.VendorEmail)
		c.JSON(http.StatusOK, updated)
	}
}
