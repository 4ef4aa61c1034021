package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// Wallet holds a single account's balance. One wallet per user; the platform
// commission account is a regular row with kind=platform. Balances are only
// ever mutated through the wallet service so every change has a matching
// journal entry.
type Wallet struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Kind        enums.WalletKind `gorm:"column:kind;type:text;not null;default:'user'"`
	Balance     decimal.Decimal  `gorm:"column:balance;type:numeric(14,2);not null;default:0"`
	LastUpdated time.Time        `gorm:"column:last_updated"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
