package repository

import (
	"context"
	"fmt"

	"boqportal/models"
	"boqportal/utils"

	"gorm.io/gorm"
)

// ProjectStore persists projects together with their categories, vendors and BOQ documents.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.ProjectGorm) error
	GetProject(ctx context.Context, id int) (*models.ProjectGorm, error)
	ListProjects(ctx context.Context) ([]models.ProjectGorm, error)
	DeleteProject(ctx context.Context, id int) error

	CreateCategory(ctx context.Context, c *models.CategoryGorm) error
	ListCategories(ctx context.Context, projectID int) ([]models.CategoryGorm, error)

	CreateVendor(ctx context.Context, v *models.VendorGorm) error
	GetVendor(ctx context.Context, id int) (*models.VendorGorm, error)
	ListVendors(ctx context.Context) ([]models.VendorGorm, error)

	CreateBOQDocument(ctx context.Context, d *models.BOQDocumentGorm) error
	GetBOQDocument(ctx context.Context, id int) (*models.BOQDocumentGorm, error)
	ListBOQDocuments(ctx context.Context, projectID int, category string) ([]models.BOQDocumentGorm, error)
}

type GormProjectRepository struct {
	db *gorm.DB
}

func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) CreateProject(ctx context.Context, p *models.ProjectGorm) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", mapGormError(err))
	}
	return nil
}

func (r *GormProjectRepository) GetProject(ctx context.Context, id int) (*models.ProjectGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	var p models.ProjectGorm
	if err := r.db.WithContext(ctx).First(&p, "project_id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &p, nil
}

func (r *GormProjectRepository) ListProjects(ctx context.Context) ([]models.ProjectGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	projects := make([]models.ProjectGorm, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// DeleteProject soft-deletes a project and the performas filed against it.
func (r *GormProjectRepository) DeleteProject(ctx context.Context, id int) error {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.ProjectGorm{}, "project_id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Delete(&models.PerformaGorm{}, "project_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete project performas: %w", err)
		}
		return nil
	})
}

func (r *GormProjectRepository) CreateCategory(ctx context.Context, c *models.CategoryGorm) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryGorm{}).
		Where("project_id = ? AND LOWER(name) = LOWER(?)", c.ProjectID, c.Name).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return mapGormError(err)
	}
	return nil
}

func (r *GormProjectRepository) ListCategories(ctx context.Context, projectID int) ([]models.CategoryGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	categories := make([]models.CategoryGorm, 0)
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GormProjectRepository) CreateVendor(ctx context.Context, v *models.VendorGorm) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create vendor: %w", mapGormError(err))
	}
	return nil
}

func (r *GormProjectRepository) GetVendor(ctx context.Context, id int) (*models.VendorGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	var v models.VendorGorm
	if err := r.db.WithContext(ctx).First(&v, "vendor_id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &v, nil
}

func (r *GormProjectRepository) ListVendors(ctx context.Context) ([]models.VendorGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	vendors := make([]models.VendorGorm, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

func (r *GormProjectRepository) CreateBOQDocument(ctx context.Context, d *models.BOQDocumentGorm) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to save BOQ document: %w", mapGormError(err))
	}
	return nil
}

func (r *GormProjectRepository) GetBOQDocument(ctx context.Context, id int) (*models.BOQDocumentGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	var d models.BOQDocumentGorm
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &d, nil
}

// ListBOQDocuments lists a project's BOQ uploads, optionally narrowed to one effective category.
func (r *GormProjectRepository) ListBOQDocuments(ctx context.Context, projectID int, category string) ([]models.BOQDocumentGorm, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if category != "" {
		q = whereEffectiveCategory(q, category)
	}
	docs := make([]models.BOQDocumentGorm, 0)
	if err := q.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list BOQ documents: %w", err)
	}
	return docs, nil
}
