package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boqportal/comparison"
	"boqportal/models"
	"boqportal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PerformaFilter narrows a performa listing. Zero values match everything.
type PerformaFilter struct {
	VendorID int
	Status   string
	Category string
}

// PerformaStore persists vendor quotes and their line items.
type PerformaStore interface {
	CreatePerforma(ctx context.Context, p *models.PerformaGorm) error
	GetPerforma(ctx context.Context, id int) (*models.PerformaGorm, error)
	ListPerformas(ctx context.Context, projectID int, filter PerformaFilter) ([]models.PerformaGorm, error)
	UpdatePerformaStatus(ctx context.Context, id int, status, reviewer, remarks string, at time.Time) (*models.PerformaGorm, error)
	AttachPerformaFile(ctx context.Context, id int, fileName, key, url string) (*models.PerformaGorm, error)
	DeletePerforma(ctx context.Context, id int) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	QuoteSetVersion(ctx context.Context, projectID int) (string, error)
}

// GormPerformaRepository is the postgres implementation of PerformaStore.
type GormPerformaRepository struct {
	db *gorm.DB
}

func NewGormPerformaRepository(db *gorm.DB) *GormPerformaRepository {
	return &GormPerformaRepository{db: db}
}

func mapGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func orderedLineItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// CreatePerforma inserts the performa and its line items in one transaction.
func (r *GormPerformaRepository) CreatePerforma(ctx context.Context, p *models.PerformaGorm) error {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create performa: %w", mapGormError(err))
	}
	return nil
}

func (r *GormPerformaRepository) GetPerforma(ctx context.Context, id int) (*models.PerformaGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	var p models.PerformaGorm
	err := r.db.WithContext(ctx).Preload("LineItems", orderedLineItems).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return &p, nil
}

// ListPerformas returns a project's performas in submission order, line items included.
func (r *GormPerformaRepository) ListPerformas(ctx context.Context, projectID int, filter PerformaFilter) ([]models.PerformaGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.SlowQuery)
	defer cancel()

	q := r.db.WithContext(ctx).
		Preload("LineItems", orderedLineItems).
		Where("project_id = ?", projectID)
	if filter.VendorID != 0 {
		q = q.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = whereEffectiveCategory(q, filter.Category)
	}

	performas := make([]models.PerformaGorm, 0)
	if err := q.Order("submitted_at ASC, id ASC").Find(&performas).Error; err != nil {
		return nil, fmt.Errorf("failed to list performas: %w", err)
	}
	return performas, nil
}

func whereEffectiveCategory(q *gorm.DB, category string) *gorm.DB {
	if category == comparison.DefaultCategory {
		return q.Where("(category IS NULL OR category = '' OR category = ?)", category)
	}
	return q.Where("category = ?", category)
}

// UpdatePerformaStatus applies an admin review under a row lock.
func (r *GormPerformaRepository) UpdatePerformaStatus(ctx context.Context, id int, status, reviewer, remarks string, at time.Time) (*models.PerformaGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.PerformaGorm
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
			return mapGormError(err)
		}
		if !models.CanTransition(p.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, status)
		}
		updates := map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewer,
			"reviewed_at": at,
			"updated_at":  at,
		}
		if remarks != "" {
			updates["remarks"] = remarks
		}
		return tx.Model(&p).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetPerforma(ctx, id)
}

func (r *GormPerformaRepository) AttachPerformaFile(ctx context.Context, id int, fileName, key, url string) (*models.PerformaGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	result := r.db.WithContext(ctx).Model(&models.PerformaGorm{}).Where("id = ?", id).Updates(map[string]interface{}{
		"file_name":  fileName,
		"file_key":   key,
		"file_url":   url,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to attach file: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetPerforma(ctx, id)
}

// DeletePerforma soft-deletes the performa; its line items stay for the audit trail.
func (r *GormPerformaRepository) DeletePerforma(ctx context.Context, id int) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	result := r.db.WithContext(ctx).Delete(&models.PerformaGorm{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete performa: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireOverdue marks open performas whose validity ended before now as EXPIRED.
func (r *GormPerformaRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.SlowQuery)
	defer cancel()

	result := r.db.WithContext(ctx).Model(&models.PerformaGorm{}).
		Where("status IN ?", []string{models.PerformaPending, models.PerformaUnderReview}).
		Where("valid_until IS NOT NULL AND valid_until < ?", now).
		Updates(map[string]interface{}{"status": models.PerformaExpired, "updated_at": now})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire performas: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// QuoteSetVersion changes whenever a project's performa set changes (insert, delete, update).
func (r *GormPerformaRepository) QuoteSetVersion(ctx context.Context, projectID int) (string, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	var row struct {
		Count      int64
		LastUpdate *time.Time
	}
	err := r.db.WithContext(ctx).Model(&models.PerformaGorm{}).
		Select("COUNT(*) AS count, MAX(updated_at) AS last_update").
		Where("project_id = ?", projectID).
		Scan(&row).Error
	if err != nil {
		return "", fmt.Errorf("failed to read quote set version: %w", err)
	}
	var last int64
	if row.LastUpdate != nil {
		last = row.LastUpdate.UnixNano()
	}
	return fmt.Sprintf("%d-%d", row.Count, last), nil
}
