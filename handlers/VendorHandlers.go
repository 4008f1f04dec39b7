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

// CreateVendor godoc
// @Summary      Create vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request  body      models.VendorRequest  true  "Vendor"
// @Success      201      {object}  models.VendorGorm
// @Failure      400      {object}  models.ErrorResponse
// @Router       /api/vendors [post]
func CreateVendor(projects repository.ProjectStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.VendorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor name cannot be empty"})
			return
		}

		now := time.Now()
		vendor := &models.VendorGorm{
			VendorID:  repository.GenerateRandomNumber(),
			Name:      req.Name,
			Email:     strings.TrimSpace(req.Email),
			Phone:     req.Phone,
			Address:   req.Address,
			GSTNumber: strings.ToUpper(strings.TrimSpace(req.GSTNumber)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if user := currentUser(c); user != nil {
			vendor.CreatedBy = user.FullName()
		}

		if err := projects.CreateVendor(c.Request.Context(), vendor); err != nil {
			respondStoreError(c, err, "Vendor")
			return
		}

		recordActivity(c, activity, "Vendor", "Create", fmt.Sprintf("Created vendor %s", vendor.Name), 0, vendor.Name, vendor.Email)
		c.JSON(http.StatusCreated, vendor)
	}
}

// GetVendors godoc
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Success      200  {array}   models.VendorGorm
// @Router       /api/vendors [get]
func GetVendors(projects repository.ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendors, err := projects.ListVendors(c.Request.Context())
		if err != nil {
			respondStoreError(c, err, "Vendor")
			return
		}
		c.JSON(http.StatusOK, vendors)
	}
}
