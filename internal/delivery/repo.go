package delivery

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// Repository manages persistence for delivery assignments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, assignment *models.DeliveryAssignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryAssignment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.DeliveryAssignment, error)
	TransitionStatus(ctx context.Context, assignment *models.DeliveryAssignment, expected enums.DeliveryStatus) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a delivery repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, assignment *models.DeliveryAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryAssignment, error) {
	var assignment models.DeliveryAssignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.DeliveryAssignment, error) {
	var assignment models.DeliveryAssignment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) TransitionStatus(ctx context.Context, assignment *models.DeliveryAssignment, expected enums.DeliveryStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DeliveryAssignment{}).
		Where("id = ? AND status = ?", assignment.ID, expected).
		Select("status", "status_history", "settlement_applied", "partner_id", "cod_collected", "picked_up_at", "delivered_at", "failure_reason", "updated_at").
		Updates(assignment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
