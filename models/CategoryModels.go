package models

import (
	"time"

	"gorm.io/gorm"
)

// CategoryGorm represents the categories table with GORM tags
type CategoryGorm struct {
	ID        int            `gorm:"primaryKey;column:id;autoIncrement:false" json:"id" example:"1"`
	Name      string         `gorm:"column:name;not null;uniqueIndex:idx_category_project_name" json:"name" example:"Electrical"`
	ProjectID int            `gorm:"column:project_id;not null;uniqueIndex:idx_category_project_name" json:"project_id" example:"1"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at" example:"2024-01-15T10:30:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for CategoryGorm
func (CategoryGorm) TableName() string {
	return "categories"
}

// Category represents the category for API requests/responses
type Category struct {
	ID        int       `json:"id,omitempty" example:"1"`
	Name      string    `json:"name" binding:"required" example:"Electrical"`
	ProjectID int       `json:"project_id,omitempty" example:"1"`
	CreatedAt time.Time `json:"created_at,omitempty" example:"2024-01-15T10:30:00Z"`
}

// CategoryResponse represents the response for category operations
type CategoryResponse struct {
	Success bool      `json:"success" example:"true"`
	Message string    `json:"message" example:"Success"`
	Data    *Category `json:"data,omitempty"`
	Error   string    `json:"error,omitempty" example:""`
}

// CategoryListResponse represents the response for category list operations
type CategoryListResponse struct {
	Success bool       `json:"success" example:"true"`
	Message string     `json:"message" example:"Success"`
	Data    []Category `json:"data"`
	Error   string     `json:"error,omitempty" example:""`
}

// ToCategory converts the table row to its API shape.
func (c CategoryGorm) ToCategory() Category {
	return Category{ID: c.ID, Name: c.Name, ProjectID: c.ProjectID, CreatedAt: c.CreatedAt}
}
