package repo

import (
	"context"

	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository handles gold chain listings
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Store").Create(product).Error
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Store").Save(product).Error
}

// Delete soft deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ListByStore lists a store's products, cheapest first
func (r *ProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("price ASC, name ASC").
		Find(&products).Error
	return products, err
}

// Search finds products matching the comparison filter. Sorting and the
// open-now filter are applied by the caller.
func (r *ProductRepository) Search(ctx context.Context, filter models.CompareFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.Karat != "" {
		query = query.Where("karat = ?", filter.Karat)
	}
	if filter.Style != "" {
		query = query.Where("style = ?", filter.Style)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinLength != nil {
		query = query.Where("length_inches >= ?", *filter.MinLength)
	}
	if filter.MaxLength != nil {
		query = query.Where("length_inches <= ?", *filter.MaxLength)
	}
	if filter.InStock {
		query = query.Where("in_stock = ?", true)
	}

	var products []models.Product
	err := query.Order("price ASC").Find(&products).Error
	return products, err
}
