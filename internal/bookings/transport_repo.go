package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// TransportRepository manages persistence for transport bookings.
type TransportRepository interface {
	WithTx(tx *gorm.DB) TransportRepository
	Create(ctx context.Context, booking *models.TransportBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.TransportBooking, error)
	TransitionStatus(ctx context.Context, booking *models.TransportBooking, expected enums.TransportBookingStatus) (bool, error)
}

type transportRepository struct {
	db *gorm.DB
}

// NewTransportRepository returns a transport booking repository.
func NewTransportRepository(db *gorm.DB) TransportRepository {
	return &transportRepository{db: db}
}

func (r *transportRepository) WithTx(tx *gorm.DB) TransportRepository {
	if tx == nil {
		return r
	}
	return &transportRepository{db: tx}
}

func (r *transportRepository) Create(ctx context.Context, booking *models.TransportBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *transportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.TransportBooking, error) {
	var booking models.TransportBooking
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *transportRepository) TransitionStatus(ctx context.Context, booking *models.TransportBooking, expected enums.TransportBookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TransportBooking{}).
		Where("id = ? AND status = ?", booking.ID, expected).
		Select("status", "status_history", "settlement_applied", "payment_status", "refund_amount", "partner_id", "completed_at", "cancelled_at", "cancel_reason", "paid_at", "updated_at").
		Updates(booking)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
