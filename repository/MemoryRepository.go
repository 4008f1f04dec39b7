package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"boqportal/comparison"
	"boqportal/models"
)

// InMemoryPerformaRepository keeps performas in process memory. Used by tests and local runs without postgres.
type InMemoryPerformaRepository struct {
	mu        sync.RWMutex
	performas map[int]*models.PerformaGorm
	versions  map[int]int64
}

func NewInMemoryPerformaRepository() *InMemoryPerformaRepository {
	return &InMemoryPerformaRepository{
		performas: make(map[int]*models.PerformaGorm),
		versions:  make(map[int]int64),
	}
}

func clonePerforma(p *models.PerformaGorm) models.PerformaGorm {
	out := *p
	out.LineItems = append([]models.PerformaLineItemGorm(nil), p.LineItems...)
	return out
}

func (r *InMemoryPerformaRepository) CreatePerforma(ctx context.Context, p *models.PerformaGorm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = GenerateRandomNumber()
	}
	if _, exists := r.performas[p.ID]; exists {
		return ErrDuplicate
	}
	for _, existing := range r.performas {
		if p.Reference != "" && existing.Reference == p.Reference {
			return ErrDuplicate
		}
	}
	for i := range p.LineItems {
		p.LineItems[i].PerformaID = p.ID
		p.LineItems[i].ID = uint(i + 1)
	}
	stored := clonePerforma(p)
	r.performas[p.ID] = &stored
	r.versions[p.ProjectID]++
	return nil
}

func (r *InMemoryPerformaRepository) GetPerforma(ctx context.Context, id int) (*models.PerformaGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.performas[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := clonePerforma(p)
	return &out, nil
}

func (r *InMemoryPerformaRepository) ListPerformas(ctx context.Context, projectID int, filter PerformaFilter) ([]models.PerformaGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	performas := make([]models.PerformaGorm, 0)
	for _, p := range r.performas {
		if p.ProjectID != projectID {
			continue
		}
		if filter.VendorID != 0 && p.VendorID != filter.VendorID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.EffectiveCategory() != filter.Category {
			continue
		}
		performas = append(performas, clonePerforma(p))
	}
	sort.Slice(performas, func(i, j int) bool {
		if !performas[i].SubmittedAt.Equal(performas[j].SubmittedAt) {
			return performas[i].SubmittedAt.Before(performas[j].SubmittedAt)
		}
		return performas[i].ID < performas[j].ID
	})
	return performas, nil
}

func (r *InMemoryPerformaRepository) UpdatePerformaStatus(ctx context.Context, id int, status, reviewer, remarks string, at time.Time) (*models.PerformaGorm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.performas[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !models.CanTransition(p.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, status)
	}
	p.Status = status
	p.ReviewedBy = &reviewer
	reviewedAt := at
	p.ReviewedAt = &reviewedAt
	p.UpdatedAt = at
	if remarks != "" {
		p.Remarks = remarks
	}
	r.versions[p.ProjectID]++
	out := clonePerforma(p)
	return &out, nil
}

func (r *InMemoryPerformaRepository) AttachPerformaFile(ctx context.Context, id int, fileName, key, url string) (*models.PerformaGorm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.performas[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.FileName = &fileName
	p.FileKey = &key
	p.FileURL = &url
	p.UpdatedAt = time.Now()
	r.versions[p.ProjectID]++
	out := clonePerforma(p)
	return &out, nil
}

func (r *InMemoryPerformaRepository) DeletePerforma(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.performas[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.performas, id)
	r.versions[p.ProjectID]++
	return nil
}

func (r *InMemoryPerformaRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired int64
	for _, p := range r.performas {
		if p.ValidUntil == nil || !p.ValidUntil.Before(now) {
			continue
		}
		if !models.CanTransition(p.Status, models.PerformaExpired) {
			continue
		}
		p.Status = models.PerformaExpired
		p.UpdatedAt = now
		r.versions[p.ProjectID]++
		expired++
	}
	return expired, nil
}

func (r *InMemoryPerformaRepository) QuoteSetVersion(ctx context.Context, projectID int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return fmt.Sprintf("mem-%d", r.versions[projectID]), nil
}

// InMemoryProjectRepository is the in-memory ProjectStore.
type InMemoryProjectRepository struct {
	mu         sync.RWMutex
	projects   map[int]*models.ProjectGorm
	categories map[int][]models.CategoryGorm
	vendors    map[int]*models.VendorGorm
	documents  map[int]*models.BOQDocumentGorm
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{
		projects:   make(map[int]*models.ProjectGorm),
		categories: make(map[int][]models.CategoryGorm),
		vendors:    make(map[int]*models.VendorGorm),
		documents:  make(map[int]*models.BOQDocumentGorm),
	}
}

func (r *InMemoryProjectRepository) CreateProject(ctx context.Context, p *models.ProjectGorm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ProjectID == 0 {
		p.ProjectID = GenerateRandomNumber()
	}
	if _, exists := r.projects[p.ProjectID]; exists {
		return ErrDuplicate
	}
	stored := *p
	r.projects[p.ProjectID] = &stored
	return nil
}

func (r *InMemoryProjectRepository) GetProject(ctx context.Context, id int) (*models.ProjectGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *InMemoryProjectRepository) ListProjects(ctx context.Context) ([]models.ProjectGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]models.ProjectGorm, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, *p)
	}
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		}
		return projects[i].ProjectID < projects[j].ProjectID
	})
	return projects, nil
}

func (r *InMemoryProjectRepository) DeleteProject(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	delete(r.categories, id)
	return nil
}

func (r *InMemoryProjectRepository) CreateCategory(ctx context.Context, c *models.CategoryGorm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories[c.ProjectID] {
		if strings.EqualFold(existing.Name, c.Name) {
			return ErrDuplicate
		}
	}
	if c.ID == 0 {
		c.ID = GenerateRandomNumber()
	}
	r.categories[c.ProjectID] = append(r.categories[c.ProjectID], *c)
	return nil
}

func (r *InMemoryProjectRepository) ListCategories(ctx context.Context, projectID int) ([]models.CategoryGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := append(make([]models.CategoryGorm, 0), r.categories[projectID]...)
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *InMemoryProjectRepository) CreateVendor(ctx context.Context, v *models.VendorGorm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.VendorID == 0 {
		v.VendorID = GenerateRandomNumber()
	}
	if _, exists := r.vendors[v.VendorID]; exists {
		return ErrDuplicate
	}
	stored := *v
	r.vendors[v.VendorID] = &stored
	return nil
}

func (r *InMemoryProjectRepository) GetVendor(ctx context.Context, id int) (*models.VendorGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vendors[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *v
	return &out, nil
}

func (r *InMemoryProjectRepository) ListVendors(ctx context.Context) ([]models.VendorGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make([]models.VendorGorm, 0, len(r.vendors))
	for _, v := range r.vendors {
		vendors = append(vendors, *v)
	}
	sort.Slice(vendors, func(i, j int) bool { return vendors[i].Name < vendors[j].Name })
	return vendors, nil
}

func (r *InMemoryProjectRepository) CreateBOQDocument(ctx context.Context, d *models.BOQDocumentGorm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == 0 {
		d.ID = GenerateRandomNumber()
	}
	stored := *d
	r.documents[d.ID] = &stored
	return nil
}

func (r *InMemoryProjectRepository) GetBOQDocument(ctx context.Context, id int) (*models.BOQDocumentGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.documents[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *d
	return &out, nil
}

func (r *InMemoryProjectRepository) ListBOQDocuments(ctx context.Context, projectID int, category string) ([]models.BOQDocumentGorm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]models.BOQDocumentGorm, 0)
	for _, d := range r.documents {
		if d.ProjectID != projectID {
			continue
		}
		if category != "" && comparison.ParseCategory(d.Category).Effective() != category {
			continue
		}
		docs = append(docs, *d)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}
