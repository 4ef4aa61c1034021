package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// LabourRepository manages persistence for labour bookings.
type LabourRepository interface {
	WithTx(tx *gorm.DB) LabourRepository
	Create(ctx context.Context, booking *models.LabourBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.LabourBooking, error)
	// TransitionStatus writes the booking's new status and settlement fields,
	// guarded on the expected current status.
	TransitionStatus(ctx context.Context, booking *models.LabourBooking, expected enums.LabourBookingStatus) (bool, error)
}

type labourRepository struct {
	db *gorm.DB
}

// NewLabourRepository returns a labour booking repository.
func NewLabourRepository(db *gorm.DB) LabourRepository {
	return &labourRepository{db: db}
}

func (r *labourRepository) WithTx(tx *gorm.DB) LabourRepository {
	if tx == nil {
		return r
	}
	return &labourRepository{db: tx}
}

func (r *labourRepository) Create(ctx context.Context, booking *models.LabourBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *labourRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.LabourBooking, error) {
	var booking models.LabourBooking
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

func (r *labourRepository) TransitionStatus(ctx context.Context, booking *models.LabourBooking, expected enums.LabourBookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LabourBooking{}).
		Where("id = ? AND status = ?", booking.ID, expected).
		Select("status", "status_history", "settlement_applied", "payment_status", "refund_amount", "partner_id", "completed_at", "cancelled_at", "cancel_reason", "paid_at", "updated_at").
		Updates(booking)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
