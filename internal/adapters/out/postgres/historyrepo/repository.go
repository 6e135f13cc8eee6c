package historyrepo

import (
	"context"

	"fooddelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements StatusHistoryRepository using GORM.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new GORM status history
// repository.
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// Append records a status change.
func (r *GormStatusHistoryRepository) Append(ctx context.Context, change ports.StatusChange) error {
	if err := change.OrderID.Validate(); err != nil {
		return err
	}
	if err := change.Status.Validate(); err != nil {
		return err
	}
	if err := change.Actor.Validate(); err != nil {
		return err
	}

	dto := fromDomain(change)
	return r.db.WithContext(ctx).Create(&dto).Error
}
