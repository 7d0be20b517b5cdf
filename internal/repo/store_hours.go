package repo

import (
	"context"

	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreHoursRepository handles structured opening-hours rows
type StoreHoursRepository struct {
	db *gorm.DB
}

// NewStoreHoursRepository creates a new store hours repository
func NewStoreHoursRepository(db *gorm.DB) *StoreHoursRepository {
	return &StoreHoursRepository{db: db}
}

// ListByStore lists a store's rows in display order
func (r *StoreHoursRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.StoreHours, error) {
	var rows []models.StoreHours
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("sort_order ASC").
		Find(&rows).Error
	return rows, err
}

// Replace swaps all of a store's rows for the given ones in one transaction.
// Old rows are removed permanently so the per-day unique index stays valid.
func (r *StoreHoursRepository) Replace(ctx context.Context, storeID uuid.UUID, rows []models.StoreHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("store_id = ?", storeID).Delete(&models.StoreHours{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].StoreID = storeID
		}
		return tx.Create(&rows).Error
	})
}
