// Package notificationrepo persists the notification dedupe ledger. A row
// per natural key guarantees at-most-once delivery per event and recipient.
package notificationrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"engage/internal/core/domain/model/notification"
)

// NotificationDTO represents the database structure for recorded
// notifications.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	Kind        string
	NaturalKey  string `gorm:"uniqueIndex"`
	Title       string
	Body        string
	CreatedAt   time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Record inserts the notification unless its natural key was already seen.
// Returns true when the row was created.
func (r *GormNotificationRepository) Record(ctx context.Context, n *notification.Notification) (bool, error) {
	dto := NotificationDTO{
		ID:          n.ID().Bytes(),
		RecipientID: n.RecipientID().Bytes(),
		Kind:        string(n.Kind()),
		NaturalKey:  n.NaturalKey(),
		Title:       n.Title(),
		Body:        n.Body(),
		CreatedAt:   n.CreatedAt(),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "natural_key"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
