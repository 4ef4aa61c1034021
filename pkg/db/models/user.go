package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User is the base identity for every marketplace account. Role-specific
// data hangs off profile rows (SellerProfile etc.), not off this record.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Mobile    string         `gorm:"column:mobile;not null"`
	Email     *string        `gorm:"column:email"`
	Roles     pq.StringArray `gorm:"column:roles;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
