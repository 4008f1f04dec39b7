package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"boqportal/comparison"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Performa statuses share their values with the comparison engine.
const (
	PerformaPending     = comparison.StatusPending
	PerformaUnderReview = comparison.StatusUnderReview
	PerformaApproved    = comparison.StatusApproved
	PerformaRejected    = comparison.StatusRejected
	PerformaExpired     = comparison.StatusExpired
)

var performaTransitions = map[string][]string{
	PerformaPending:     {PerformaUnderReview, PerformaApproved, PerformaRejected, PerformaExpired},
	PerformaUnderReview: {PerformaApproved, PerformaRejected, PerformaExpired},
}

// IsValidPerformaStatus reports whether s is one of the known statuses.
func IsValidPerformaStatus(s string) bool {
	switch s {
	case PerformaPending, PerformaUnderReview, PerformaApproved, PerformaRejected, PerformaExpired:
		return true
	}
	return false
}

// CanTransition reports whether a performa may move from one status to another.
// APPROVED, REJECTED and EXPIRED are final.
func CanTransition(from, to string) bool {
	for _, next := range performaTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PerformaGorm represents a vendor quote (performa) with GORM tags
type PerformaGorm struct {
	ID          int                    `gorm:"primaryKey;column:id;autoIncrement:false" json:"id" example:"731004552"`
	Reference   string                 `gorm:"column:reference;not null;uniqueIndex" json:"reference" example:"PF-AB12345"`
	ProjectID   int                    `gorm:"column:project_id;not null;index" json:"project_id" example:"978617912"`
	VendorID    int                    `gorm:"column:vendor_id;not null;index" json:"vendor_id" example:"482913004"`
	VendorName  string                 `gorm:"column:vendor_name;not null" json:"vendor_name" example:"ABC Electricals"`
	VendorEmail string                 `gorm:"column:vendor_email" json:"vendor_email,omitempty" example:"sales@abc.example"`
	Category    *string                `gorm:"column:category" json:"category" example:"Electrical"`
	TotalAmount string                 `gorm:"column:total_amount" json:"total_amount" example:"1500.00"`
	Currency    string                 `gorm:"column:currency;not null;default:'INR'" json:"currency" example:"INR"`
	Status      string                 `gorm:"column:status;not null;default:'PENDING';index" json:"status" example:"PENDING"`
	ValidUntil  *time.Time             `gorm:"column:valid_until" json:"valid_until,omitempty"`
	Remarks     string                 `gorm:"column:remarks" json:"remarks,omitempty"`
	FileName    *string                `gorm:"column:file_name" json:"file_name,omitempty"`
	FileKey     *string                `gorm:"column:file_key" json:"-"`
	FileURL     *string                `gorm:"column:file_url" json:"file_url,omitempty"`
	ReviewedBy  *string                `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time             `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	SubmittedBy string                 `gorm:"column:submitted_by;not null" json:"submitted_by" example:"Jane Vendor"`
	SubmittedAt time.Time              `gorm:"column:submitted_at;not null" json:"submitted_at"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt         `gorm:"index" json:"-"`
	LineItems   []PerformaLineItemGorm `gorm:"foreignKey:PerformaID;constraint:OnDelete:CASCADE" json:"line_items"`
}

// TableName specifies the table name for PerformaGorm
func (PerformaGorm) TableName() string {
	return "performas"
}

// EffectiveCategory returns the category used for comparison.
func (p PerformaGorm) EffectiveCategory() string {
	return comparison.ParseCategory(p.Category).Effective()
}

// Line item amounts are stored as numeric(AmountPrecision, AmountScale).
const (
	AmountPrecision = 18
	AmountScale     = 2
)

// PerformaLineItemGorm represents one priced line of a performa
type PerformaLineItemGorm struct {
	ID             uint            `gorm:"primaryKey;column:id" json:"id"`
	PerformaID     int             `gorm:"column:performa_id;not null;index" json:"performa_id"`
	Position       int             `gorm:"column:position;not null" json:"position"`
	SequenceNumber *int            `gorm:"column:sequence_number" json:"sequence_number"`
	Description    string          `gorm:"column:description" json:"description"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null" json:"amount"`
}

// TableName specifies the table name for PerformaLineItemGorm
func (PerformaLineItemGorm) TableName() string {
	return "performa_line_items"
}

// RawAmount keeps the text of a JSON number or string exactly as submitted.
type RawAmount struct {
	Text  string
	Given bool
}

func (r *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = RawAmount{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawAmount{Text: s, Given: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*r = RawAmount{Text: n.String(), Given: true}
	return nil
}

func (r RawAmount) MarshalJSON() ([]byte, error) {
	if !r.Given {
		return []byte("null"), nil
	}
	return json.Marshal(r.Text)
}

// PerformaLineItemRequest is one line item in a performa submission
type PerformaLineItemRequest struct {
	SequenceNumber *int      `json:"sequence_number" example:"1"`
	Description    string    `json:"description" example:"Wiring"`
	Amount         RawAmount `json:"amount" swaggertype:"string" example:"1000"`
}

// PerformaSubmitRequest is the body of a performa submission
type PerformaSubmitRequest struct {
	VendorID    int                       `json:"vendor_id,omitempty" example:"482913004"`
	Category    *string                   `json:"category" example:"Electrical"`
	TotalAmount RawAmount                 `json:"total_amount" swaggertype:"string" example:"1500"`
	Currency    string                    `json:"currency" example:"INR"`
	ValidUntil  *time.Time                `json:"valid_until,omitempty" example:"2024-03-31T00:00:00Z"`
	Remarks     string                    `json:"remarks" example:"Prices include GST"`
	LineItems   []PerformaLineItemRequest `json:"line_items"`
}

// PerformaStatusRequest is the body of an admin review action
type PerformaStatusRequest struct {
	Status  string `json:"status" binding:"required" example:"APPROVED"`
	Remarks string `json:"remarks" example:"Lowest compliant quote"`
}
