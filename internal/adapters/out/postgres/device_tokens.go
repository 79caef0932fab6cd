package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"engage/internal/core/domain/model/kernel"
)

// DeviceTokenDTO represents one registered push token for an account.
type DeviceTokenDTO struct {
	Token        string    `gorm:"primaryKey"`
	AccountID    uuid.UUID `gorm:"type:uuid;index"`
	RegisteredAt time.Time
}

// TableName specifies the database table name for device tokens.
func (DeviceTokenDTO) TableName() string {
	return "device_tokens"
}

// GormDeviceTokenStore persists push tokens and resolves them for delivery.
type GormDeviceTokenStore struct {
	db *gorm.DB
}

// NewGormDeviceTokenStore creates a GORM device token store.
func NewGormDeviceTokenStore(db *gorm.DB) *GormDeviceTokenStore {
	return &GormDeviceTokenStore{db: db}
}

// Register stores a token for an account. Re-registering an existing token
// moves it to the new account, which covers device handovers.
func (s *GormDeviceTokenStore) Register(ctx context.Context, accountID kernel.UUID, token string) error {
	dto := DeviceTokenDTO{
		Token:        token,
		AccountID:    accountID.Bytes(),
		RegisteredAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// DeviceTokens returns every token registered for the account.
func (s *GormDeviceTokenStore) DeviceTokens(ctx context.Context, accountID kernel.UUID) ([]string, error) {
	var tokens []string
	err := s.db.WithContext(ctx).Model(&DeviceTokenDTO{}).
		Where("account_id = ?", accountID.Bytes()).
		Pluck("token", &tokens).Error
	return tokens, err
}
