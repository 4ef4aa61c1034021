package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

// Order is a buyer purchase spanning one or more sellers. Settlement fans
// earnings out per seller using the line items, so the order keeps its items
// attached rather than denormalising a single seller id.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex"`
	BuyerID         uuid.UUID           `gorm:"column:buyer_id;type:uuid;not null;index"`
	DeliveryAddress *types.Address      `gorm:"column:delivery_address;type:jsonb;serializer:json"`
	Subtotal        decimal.Decimal     `gorm:"column:subtotal;type:numeric(14,2);not null"`
	DeliveryFee     decimal.Decimal     `gorm:"column:delivery_fee;type:numeric(14,2);not null;default:0"`
	Total           decimal.Decimal     `gorm:"column:total;type:numeric(14,2);not null"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	PaidAt          *time.Time          `gorm:"column:paid_at"`
	RefundAmount    decimal.Decimal     `gorm:"column:refund_amount;type:numeric(14,2);not null;default:0"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'placed'"`
	StatusHistory   types.StatusHistory `gorm:"column:status_history;type:jsonb;serializer:json"`
	// SettlementApplied flips exactly once, in the same transaction as the
	// ledger postings. It is the idempotence guard for the settlement run.
	SettlementApplied bool        `gorm:"column:settlement_applied;not null;default:false"`
	CancelledAt       *time.Time  `gorm:"column:cancelled_at"`
	CancelledBy       *uuid.UUID  `gorm:"column:cancelled_by;type:uuid"`
	CancelReason      *string     `gorm:"column:cancel_reason"`
	Items             []OrderItem `gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
