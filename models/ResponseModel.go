package models

import "boqportal/comparison"

// ErrorResponse is used in @Failure for swagger
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// MessageResponse is a plain success message
type MessageResponse struct {
	Message string `json:"message" example:"Deleted successfully"`
}

// LoginRequest is used in @Param for login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password"`
	IP       string `json:"ip" example:"192.168.1.1"`
}

// LoginResponse is used in @Success for login
type LoginResponse struct {
	Message     string    `json:"message" example:"User successfully logged in"`
	AccessToken string    `json:"access_token" example:"eyJhbGc..."`
	Role        string    `json:"role" example:"admin"`
	User        LoginUser `json:"user"`
}

// LoginUser is the user object inside LoginResponse
type LoginUser struct {
	ID       int    `json:"id" example:"1"`
	Email    string `json:"email" example:"user@example.com"`
	VendorID int    `json:"vendor_id,omitempty" example:"482913004"`
}

// ProjectRequest is the body of project creation
type ProjectRequest struct {
	Name        string `json:"name" binding:"required" example:"Tower A Fit-out"`
	Description string `json:"description" example:"Electrical and plumbing works"`
	Location    string `json:"location" example:"Pune"`
	Currency    string `json:"currency" example:"INR"`
}

// VendorRequest is the body of vendor creation
type VendorRequest struct {
	Name      string `json:"name" binding:"required" example:"ABC Electricals"`
	Email     string `json:"email" example:"sales@abc.example"`
	Phone     string `json:"phone" example:"9876543210"`
	Address   string `json:"address" example:"Plot 12, MIDC"`
	GSTNumber string `json:"gst_number" example:"27ABCDE1234F1Z5"`
}

// ComparisonResponse wraps the comparison matrix for the JSON API
type ComparisonResponse struct {
	ProjectID           int                        `json:"project_id" example:"978617912"`
	ProjectName         string                     `json:"project_name" example:"Tower A Fit-out"`
	Currency            string                     `json:"currency" example:"INR"`
	AvailableCategories []string                   `json:"available_categories"`
	Message             string                     `json:"message,omitempty" example:"No quotes for category"`
	Table               comparison.ComparisonTable `json:"table"`
}

// ActivityLogPage is a page of activity logs
type ActivityLogPage struct {
	Data         []ActivityLog `json:"data"`
	Page         int           `json:"page" example:"1"`
	Limit        int           `json:"limit" example:"10"`
	TotalRecords int           `json:"total_records" example:"42"`
	TotalPages   int           `json:"total_pages" example:"5"`
}
