package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service creates labour and transport bookings. Like orders, status changes
// after creation run through the settlement orchestrator.
type Service interface {
	CreateLabour(ctx context.Context, input CreateLabourInput) (*models.LabourBooking, error)
	CreateTransport(ctx context.Context, input CreateTransportInput) (*models.TransportBooking, error)
	GetLabourByID(ctx context.Context, id uuid.UUID) (*models.LabourBooking, error)
	GetTransportByID(ctx context.Context, id uuid.UUID) (*models.TransportBooking, error)
}

type service struct {
	tx            txRunner
	labourRepo    LabourRepository
	transportRepo TransportRepository
	walletSvc     wallet.Service
	logg          *logger.Logger
}

// NewService wires the bookings service.
func NewService(tx txRunner, labourRepo LabourRepository, transportRepo TransportRepository, walletSvc wallet.Service, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if labourRepo == nil || transportRepo == nil {
		return nil, fmt.Errorf("booking repositories required")
	}
	if walletSvc == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	return &service{
		tx:            tx,
		labourRepo:    labourRepo,
		transportRepo: transportRepo,
		walletSvc:     walletSvc,
		logg:          logg,
	}, nil
}

func (s *service) CreateLabour(ctx context.Context, input CreateLabourInput) (*models.LabourBooking, error) {
	if input.UserID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.Skill) == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "skill is required")
	}
	if input.Workers <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "workers must be positive")
	}
	if err := validateBookingPayment(input.Total, input.PaymentMethod); err != nil {
		return nil, err
	}

	booking := &models.LabourBooking{
		ID:            uuid.New(),
		BookingNumber: newBookingNumber("LB"),
		UserID:        input.UserID,
		Skill:         input.Skill,
		Workers:       input.Workers,
		WorkDate:      input.WorkDate,
		Total:         input.Total.Round(2),
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enums.PaymentStatusPending,
		Status:        enums.LabourBookingStatusPending,
		StatusHistory: types.StatusHistory{}.Append(string(enums.LabourBookingStatusPending), &input.UserID, nil),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.PaymentMethod == enums.PaymentMethodWallet {
			refType := enums.EntityTypeLabourBooking
			refID := booking.ID
			if _, err := s.walletSvc.DebitTx(ctx, tx, wallet.EntryInput{
				UserID:        input.UserID,
				Amount:        booking.Total,
				Category:      enums.LedgerCategoryLabourPayment,
				ReferenceType: &refType,
				ReferenceID:   &refID,
			}); err != nil {
				return err
			}
			now := time.Now().UTC()
			booking.PaymentStatus = enums.PaymentStatusCompleted
			booking.PaidAt = &now
		}
		return s.labourRepo.WithTx(tx).Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithEntityID(ctx, booking.ID.String())
		s.logg.Info(logCtx, "labour booking created")
	}
	return booking, nil
}

func (s *service) CreateTransport(ctx context.Context, input CreateTransportInput) (*models.TransportBooking, error) {
	if input.UserID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.VehicleType) == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "vehicle type is required")
	}
	if input.DistanceKM.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "distance must not be negative")
	}
	if err := validateBookingPayment(input.Total, input.PaymentMethod); err != nil {
		return nil, err
	}

	booking := &models.TransportBooking{
		ID:            uuid.New(),
		BookingNumber: newBookingNumber("TB"),
		UserID:        input.UserID,
		VehicleType:   input.VehicleType,
		DistanceKM:    input.DistanceKM,
		PickupDate:    input.PickupDate,
		Total:         input.Total.Round(2),
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enums.PaymentStatusPending,
		Status:        enums.TransportBookingStatusPending,
		StatusHistory: types.StatusHistory{}.Append(string(enums.TransportBookingStatusPending), &input.UserID, nil),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.PaymentMethod == enums.PaymentMethodWallet {
			refType := enums.EntityTypeTransportBooking
			refID := booking.ID
			if _, err := s.walletSvc.DebitTx(ctx, tx, wallet.EntryInput{
				UserID:        input.UserID,
				Amount:        booking.Total,
				Category:      enums.LedgerCategoryTransportPayment,
				ReferenceType: &refType,
				ReferenceID:   &refID,
			}); err != nil {
				return err
			}
			now := time.Now().UTC()
			booking.PaymentStatus = enums.PaymentStatusCompleted
			booking.PaidAt = &now
		}
		return s.transportRepo.WithTx(tx).Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithEntityID(ctx, booking.ID.String())
		s.logg.Info(logCtx, "transport booking created")
	}
	return booking, nil
}

func (s *service) GetLabourByID(ctx context.Context, id uuid.UUID) (*models.LabourBooking, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "booking id is required")
	}
	booking, err := s.labourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading labour booking")
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "labour booking not found")
	}
	return booking, nil
}

func (s *service) GetTransportByID(ctx context.Context, id uuid.UUID) (*models.TransportBooking, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "booking id is required")
	}
	booking, err := s.transportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading transport booking")
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "transport booking not found")
	}
	return booking, nil
}

func validateBookingPayment(total decimal.Decimal, method enums.PaymentMethod) error {
	if total.LessThanOrEqual(decimal.Zero) {
		return apperrors.New(apperrors.CodeValidation, "total must be positive")
	}
	if !method.IsValid() {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid payment method %q", method))
	}
	return nil
}

func newBookingNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return prefix + "-" + suffix
}
