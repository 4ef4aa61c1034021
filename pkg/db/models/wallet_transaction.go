package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

// WalletTransaction is an immutable journal entry. Rows are never updated or
// deleted; corrections are new offsetting entries.
type WalletTransaction struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:idx_wallet_transactions_user_created"`
	Direction     enums.LedgerDirection `gorm:"column:direction;type:text;not null"`
	Amount        decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null"`
	BalanceBefore decimal.Decimal       `gorm:"column:balance_before;type:numeric(14,2);not null"`
	BalanceAfter  decimal.Decimal       `gorm:"column:balance_after;type:numeric(14,2);not null"`
	Category      enums.LedgerCategory  `gorm:"column:category;type:text;not null"`
	ReferenceType *enums.EntityType     `gorm:"column:reference_type;type:text"`
	ReferenceID   *uuid.UUID            `gorm:"column:reference_id;type:uuid"`
	Description   *string               `gorm:"column:description"`
	Metadata      types.JSONMap         `gorm:"column:metadata;type:jsonb"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime;index:idx_wallet_transactions_user_created"`
}
