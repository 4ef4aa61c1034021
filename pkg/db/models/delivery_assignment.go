package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

// DeliveryAssignment links an order to the delivery partner carrying it. For
// cash-on-delivery orders the partner collects the order total and owes it
// back to the platform; settlement posts the earning and the collection as
// two separate journal entries.
type DeliveryAssignment struct {
	ID                uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DeliveryNumber    string               `gorm:"column:delivery_number;not null;uniqueIndex"`
	OrderID           uuid.UUID            `gorm:"column:order_id;type:uuid;not null;index"`
	PartnerID         *uuid.UUID           `gorm:"column:partner_id;type:uuid;index"`
	DeliveryFee       decimal.Decimal      `gorm:"column:delivery_fee;type:numeric(14,2);not null;default:0"`
	IsCOD             bool                 `gorm:"column:is_cod;not null;default:false"`
	CODAmount         decimal.Decimal      `gorm:"column:cod_amount;type:numeric(14,2);not null;default:0"`
	CODCollected      bool                 `gorm:"column:cod_collected;not null;default:false"`
	Status            enums.DeliveryStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	StatusHistory     types.StatusHistory  `gorm:"column:status_history;type:jsonb;serializer:json"`
	SettlementApplied bool                 `gorm:"column:settlement_applied;not null;default:false"`
	PickedUpAt        *time.Time           `gorm:"column:picked_up_at"`
	DeliveredAt       *time.Time           `gorm:"column:delivered_at"`
	FailureReason     *string              `gorm:"column:failure_reason"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
