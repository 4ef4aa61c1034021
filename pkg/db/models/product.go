package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the minimal catalogue record the settlement core needs:
// enough to price order items and restore stock on cancellation.
type Product struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID  uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index"`
	Name      string          `gorm:"column:name;not null"`
	Unit      string          `gorm:"column:unit;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	StockQty  int             `gorm:"column:stock_qty;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
