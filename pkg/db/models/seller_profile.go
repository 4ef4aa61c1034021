package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// SellerProfile is the seller capability profile for an account. A non-nil
// CommissionRate overrides the seller_product category policy.
type SellerProfile struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	ShopName       string           `gorm:"column:shop_name;not null"`
	Categories     pq.StringArray   `gorm:"column:categories;type:text[]"`
	CommissionRate *decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2)"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
