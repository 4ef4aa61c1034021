package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

// LabourBooking is a farm labour engagement between a requester and a labour
// partner. Settlement pays the partner the booking total minus commission when
// the booking completes.
type LabourBooking struct {
	ID                uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookingNumber     string                    `gorm:"column:booking_number;not null;uniqueIndex"`
	UserID            uuid.UUID                 `gorm:"column:user_id;type:uuid;not null;index"`
	PartnerID         *uuid.UUID                `gorm:"column:partner_id;type:uuid;index"`
	Skill             string                    `gorm:"column:skill;not null"`
	Workers           int                       `gorm:"column:workers;not null;default:1"`
	WorkDate          *time.Time                `gorm:"column:work_date"`
	Total             decimal.Decimal           `gorm:"column:total;type:numeric(14,2);not null"`
	PaymentMethod     enums.PaymentMethod       `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus     enums.PaymentStatus       `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	PaidAt            *time.Time                `gorm:"column:paid_at"`
	RefundAmount      decimal.Decimal           `gorm:"column:refund_amount;type:numeric(14,2);not null;default:0"`
	Status            enums.LabourBookingStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	StatusHistory     types.StatusHistory       `gorm:"column:status_history;type:jsonb;serializer:json"`
	SettlementApplied bool                      `gorm:"column:settlement_applied;not null;default:false"`
	CompletedAt       *time.Time                `gorm:"column:completed_at"`
	CancelledAt       *time.Time                `gorm:"column:cancelled_at"`
	CancelReason      *string                   `gorm:"column:cancel_reason"`
	CreatedAt         time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
