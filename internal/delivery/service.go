package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

// CreateInput assigns an order to the delivery network. For COD orders the
// assignment carries the cash amount the partner must collect.
type CreateInput struct {
	OrderID     uuid.UUID
	PartnerID   *uuid.UUID
	DeliveryFee decimal.Decimal
	IsCOD       bool
	CODAmount   decimal.Decimal
}

// Service creates delivery assignments and reads them back.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.DeliveryAssignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DeliveryAssignment, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the delivery service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.DeliveryAssignment, error) {
	if input.OrderID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "order id is required")
	}
	if input.DeliveryFee.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "delivery fee must not be negative")
	}
	if input.IsCOD && input.CODAmount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.New(apperrors.CodeValidation, "cod amount must be positive for cod deliveries")
	}

	existing, err := s.repo.FindByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "checking existing assignment")
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.CodeConflict, "order already has a delivery assignment")
	}

	status := enums.DeliveryStatusPending
	if input.PartnerID != nil {
		status = enums.DeliveryStatusAssigned
	}
	assignment := &models.DeliveryAssignment{
		ID:             uuid.New(),
		DeliveryNumber: newDeliveryNumber(),
		OrderID:        input.OrderID,
		PartnerID:      input.PartnerID,
		DeliveryFee:    input.DeliveryFee.Round(2),
		IsCOD:          input.IsCOD,
		CODAmount:      input.CODAmount.Round(2),
		Status:         status,
		StatusHistory:  types.StatusHistory{}.Append(string(status), nil, nil),
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating delivery assignment")
	}

	if s.logg != nil {
		logCtx := s.logg.WithEntityID(ctx, assignment.ID.String())
		s.logg.Info(logCtx, "delivery assignment created")
	}
	return assignment, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.DeliveryAssignment, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "assignment id is required")
	}
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading delivery assignment")
	}
	if assignment == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "delivery assignment not found")
	}
	return assignment, nil
}

func newDeliveryNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return "DL-" + suffix
}
