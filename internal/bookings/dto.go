package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// CreateLabourInput is a farm labour booking request.
type CreateLabourInput struct {
	UserID        uuid.UUID
	Skill         string
	Workers       int
	WorkDate      *time.Time
	Total         decimal.Decimal
	PaymentMethod enums.PaymentMethod
}

// CreateTransportInput is a goods transport booking request.
type CreateTransportInput struct {
	UserID        uuid.UUID
	VehicleType   string
	DistanceKM    decimal.Decimal
	PickupDate    *time.Time
	Total         decimal.Decimal
	PaymentMethod enums.PaymentMethod
}
