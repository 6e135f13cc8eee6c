// Package historyrepo persists the append-only log of order status changes.
package historyrepo

import (
	"time"

	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
)

// StatusChangeDTO is one row of the status history log.
type StatusChangeDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     string
	Actor      string
	OccurredAt time.Time
}

// TableName overrides GORM's default naming convention to use
// "status_changes".
func (StatusChangeDTO) TableName() string {
	return "status_changes"
}

func fromDomain(change ports.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		OrderID:    change.OrderID.Bytes(),
		Status:     change.Status.String(),
		Actor:      change.Actor.String(),
		OccurredAt: change.OccurredAt,
	}
}
