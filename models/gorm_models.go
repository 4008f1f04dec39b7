package models

import (
	"time"

	"gorm.io/gorm"
)

// GORM-compatible models with proper tags

// ProjectGorm represents the project table with GORM tags
type ProjectGorm struct {
	ProjectID   int            `gorm:"primaryKey;column:project_id;autoIncrement:false" json:"project_id" example:"978617912"`
	Name        string         `gorm:"column:name;not null" json:"name" example:"Tower A Fit-out"`
	Description string         `gorm:"column:description" json:"description" example:"Electrical and plumbing works"`
	Location    string         `gorm:"column:location" json:"location" example:"Pune"`
	Currency    string         `gorm:"column:currency;not null;default:'INR'" json:"currency" example:"INR"`
	CreatedBy   string         `gorm:"column:created_by;not null" json:"created_by" example:"John Doe"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for ProjectGorm
func (ProjectGorm) TableName() string {
	return "project"
}

// VendorGorm represents the vendors table with GORM tags
type VendorGorm struct {
	VendorID  int            `gorm:"primaryKey;column:vendor_id;autoIncrement:false" json:"vendor_id" example:"482913004"`
	Name      string         `gorm:"column:name;not null" json:"name" example:"ABC Electricals"`
	Email     string         `gorm:"column:email" json:"email" example:"sales@abc.example"`
	Phone     string         `gorm:"column:phone" json:"phone" example:"9876543210"`
	Address   string         `gorm:"column:address" json:"address" example:"Plot 12, MIDC"`
	GSTNumber string         `gorm:"column:gst_number" json:"gst_number" example:"27ABCDE1234F1Z5"`
	CreatedBy string         `gorm:"column:created_by" json:"created_by" example:"admin"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for VendorGorm
func (VendorGorm) TableName() string {
	return "vendors"
}

// BOQDocumentGorm represents an uploaded bill of quantities for one project category
type BOQDocumentGorm struct {
	ID          int            `gorm:"primaryKey;column:id;autoIncrement:false" json:"id"`
	ProjectID   int            `gorm:"column:project_id;not null;index" json:"project_id"`
	Category    *string        `gorm:"column:category" json:"category"`
	FileName    string         `gorm:"column:file_name;not null" json:"file_name"`
	ObjectKey   string         `gorm:"column:object_key;not null" json:"-"`
	URL         string         `gorm:"column:url" json:"url"`
	ContentType string         `gorm:"column:content_type" json:"content_type"`
	Size        int64          `gorm:"column:size" json:"size"`
	UploadedBy  string         `gorm:"column:uploaded_by;not null" json:"uploaded_by"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for BOQDocumentGorm
func (BOQDocumentGorm) TableName() string {
	return "boq_documents"
}

// ActivityLogGorm represents the activity_logs table with GORM tags
type ActivityLogGorm struct {
	ID                uint      `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt         time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UserName          string    `gorm:"column:user_name;not null" json:"user_name"`
	HostName          string    `gorm:"column:host_name;not null" json:"host_name"`
	EventContext      string    `gorm:"column:event_context;not null" json:"event_context"`
	IPAddress         string    `gorm:"column:ip_address;not null" json:"ip_address"`
	Description       string    `gorm:"column:description;not null" json:"description"`
	EventName         string    `gorm:"column:event_name;not null" json:"event_name"`
	AffectedUserName  string    `gorm:"column:affected_user_name" json:"affected_user_name"`
	AffectedUserEmail string    `gorm:"column:affected_user_email" json:"affected_user_email"`
	ProjectID         int       `gorm:"column:project_id" json:"project_id"`
}

// TableName specifies the table name for ActivityLogGorm
func (ActivityLogGorm) TableName() string {
	return "activity_logs"
}

// AllGormModels lists the tables migrated at startup.
func AllGormModels() []interface{} {
	return []interface{}{
		&ProjectGorm{},
		&CategoryGorm{},
		&VendorGorm{},
		&BOQDocumentGorm{},
		&PerformaGorm{},
		&PerformaLineItemGorm{},
		&ActivityLogGorm{},
	}
}
