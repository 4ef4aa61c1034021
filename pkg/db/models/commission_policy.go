package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// CommissionPolicy holds the platform rate for one booking/product category.
// Updates only affect future settlements.
type CommissionPolicy struct {
	ID          uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category    enums.CommissionCategory `gorm:"column:category;type:text;not null;uniqueIndex"`
	Rate        decimal.Decimal          `gorm:"column:rate;type:numeric(5,2);not null"`
	// No gorm default tag: a default would make gorm omit explicit false on
	// insert, silently activating policies created as inactive.
	Active      bool                     `gorm:"column:active;not null"`
	Description *string                  `gorm:"column:description"`
	UpdatedBy   *uuid.UUID               `gorm:"column:updated_by;type:uuid"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
