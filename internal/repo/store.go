package repo

import (
	"context"
	"strings"

	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreRepository handles store listing data access
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func preloadHours(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

// GetByID gets a store with its structured hours
func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Preload("Hours", preloadHours).
		Where("id = ?", id).
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// Create creates a new store
func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Omit("Hours").Create(store).Error
}

// Update updates a store's own columns; hours are managed separately
func (r *StoreRepository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Omit("Hours").Save(store).Error
}

// Delete soft deletes a store and its products
func (r *StoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Store{}, "id = ?", id).Error
	})
}

// List lists active stores with optional search, kind and city filters
func (r *StoreRepository) List(ctx context.Context, filter models.StoreListFilter) ([]models.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Store{}).Where("is_active = ?", true)

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", like, like)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stores []models.Store
	err := query.
		Preload("Hours", preloadHours).
		Order("name ASC").
		Limit(filter.PerPage).
		Offset((filter.Page - 1) * filter.PerPage).
		Find(&stores).Error
	if err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}

// ListByOwner lists every store owned by a user, active or not
func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Preload("Hours", preloadHours).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&stores).Error
	return stores, err
}

// ListActive lists active stores matching kind and city, used by comparisons
func (r *StoreRepository) ListActive(ctx context.Context, kind, city string) ([]models.Store, error) {
	query := r.db.WithContext(ctx).Preload("Hours", preloadHours).Where("is_active = ?", true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}

	var stores []models.Store
	err := query.Find(&stores).Error
	return stores, err
}
