package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

func (s *service) settleLabour(ctx context.Context, tx *gorm.DB, input TransitionInput) (*Result, error) {
	repo := s.labourRepo.WithTx(tx)
	booking, err := repo.FindByID(ctx, input.EntityID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading labour booking")
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "labour booking not found")
	}

	outcome, noop, err := outcomeFor(enums.EntityTypeLabourBooking, string(booking.Status), input.RequestedStatus, booking.SettlementApplied)
	if err != nil {
		return nil, err
	}
	result := &Result{
		EntityType:   enums.EntityTypeLabourBooking,
		EntityID:     booking.ID,
		Status:       outcome.To,
		RefundAmount: decimal.Zero,
		Commission:   decimal.Zero,
	}
	if noop {
		result.SettlementApplied = true
		result.AlreadySettled = true
		return result, nil
	}

	expected := booking.Status
	booking.Status = enums.LabourBookingStatus(outcome.To)
	booking.StatusHistory = booking.StatusHistory.Append(outcome.To, actorRef(input.ActorID), input.Note)
	if booking.Status == enums.LabourBookingStatusAssigned && input.PartnerID != nil {
		booking.PartnerID = input.PartnerID
	}

	if outcome.SettlementTriggering {
		if booking.PartnerID == nil {
			return nil, apperrors.New(apperrors.CodeStateConflict, "labour booking has no partner to pay")
		}
		fields := bookingFields{
			entityType:      enums.EntityTypeLabourBooking,
			entityID:        booking.ID,
			userID:          booking.UserID,
			partnerID:       *booking.PartnerID,
			total:           booking.Total,
			paymentMethod:   booking.PaymentMethod,
			paymentStatus:   booking.PaymentStatus,
			category:        enums.CommissionCategoryLabourBooking,
			paymentCategory: enums.LedgerCategoryLabourPayment,
			earningCategory: enums.LedgerCategoryLabourEarning,
		}
		paid, err := s.payoutBooking(ctx, tx, fields, result)
		if err != nil {
			return nil, err
		}
		if paid {
			now := time.Now().UTC()
			booking.PaymentStatus = enums.PaymentStatusCompleted
			booking.PaidAt = &now
		}
		now := time.Now().UTC()
		booking.CompletedAt = &now
		booking.SettlementApplied = true
		result.SettlementApplied = true
	}

	if outcome.Refunding {
		if booking.PaymentStatus == enums.PaymentStatusCompleted {
			refund, err := s.refundBooking(ctx, tx, enums.EntityTypeLabourBooking, booking.ID, booking.UserID, booking.Total, enums.LedgerCategoryLabourRefund, input, result)
			if err != nil {
				return nil, err
			}
			booking.PaymentStatus = enums.PaymentStatusRefunded
			booking.RefundAmount = refund
		}
		now := time.Now().UTC()
		booking.CancelledAt = &now
		booking.CancelReason = input.Note
	}

	ok, err := repo.TransitionStatus(ctx, booking, expected)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating labour booking status")
	}
	if !ok {
		return nil, staleStateErr(enums.EntityTypeLabourBooking)
	}

	if outcome.SettlementTriggering {
		if err := s.emitSettled(ctx, tx, enums.AggregateLabourBooking, input, result, booking.Total); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting settlement event")
		}
	}
	if outcome.Refunding {
		if err := s.emitCancelled(ctx, tx, enums.AggregateLabourBooking, input, result); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting cancellation event")
		}
	}
	return result, nil
}

func (s *service) settleTransport(ctx context.Context, tx *gorm.DB, input TransitionInput) (*Result, error) {
	repo := s.transportRepo.WithTx(tx)
	booking, err := repo.FindByID(ctx, input.EntityID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading transport booking")
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "transport booking not found")
	}

	outcome, noop, err := outcomeFor(enums.EntityTypeTransportBooking, string(booking.Status), input.RequestedStatus, booking.SettlementApplied)
	if err != nil {
		return nil, err
	}
	result := &Result{
		EntityType:   enums.EntityTypeTransportBooking,
		EntityID:     booking.ID,
		Status:       outcome.To,
		RefundAmount: decimal.Zero,
		Commission:   decimal.Zero,
	}
	if noop {
		result.SettlementApplied = true
		result.AlreadySettled = true
		return result, nil
	}

	expected := booking.Status
	booking.Status = enums.TransportBookingStatus(outcome.To)
	booking.StatusHistory = booking.StatusHistory.Append(outcome.To, actorRef(input.ActorID), input.Note)
	if booking.Status == enums.TransportBookingStatusAssigned && input.PartnerID != nil {
		booking.PartnerID = input.PartnerID
	}

	if outcome.SettlementTriggering {
		if booking.PartnerID == nil {
			return nil, apperrors.New(apperrors.CodeStateConflict, "transport booking has no partner to pay")
		}
		fields := bookingFields{
			entityType:      enums.EntityTypeTransportBooking,
			entityID:        booking.ID,
			userID:          booking.UserID,
			partnerID:       *booking.PartnerID,
			total:           booking.Total,
			paymentMethod:   booking.PaymentMethod,
			paymentStatus:   booking.PaymentStatus,
			category:        enums.CommissionCategoryTransportBooking,
			paymentCategory: enums.LedgerCategoryTransportPayment,
			earningCategory: enums.LedgerCategoryTransportEarning,
		}
		paid, err := s.payoutBooking(ctx, tx, fields, result)
		if err != nil {
			return nil, err
		}
		if paid {
			now := time.Now().UTC()
			booking.PaymentStatus = enums.PaymentStatusCompleted
			booking.PaidAt = &now
		}
		now := time.Now().UTC()
		booking.CompletedAt = &now
		booking.SettlementApplied = true
		result.SettlementApplied = true
	}

	if outcome.Refunding {
		if booking.PaymentStatus == enums.PaymentStatusCompleted {
			refund, err := s.refundBooking(ctx, tx, enums.EntityTypeTransportBooking, booking.ID, booking.UserID, booking.Total, enums.LedgerCategoryTransportRefund, input, result)
			if err != nil {
				return nil, err
			}
			booking.PaymentStatus = enums.PaymentStatusRefunded
			booking.RefundAmount = refund
		}
		now := time.Now().UTC()
		booking.CancelledAt = &now
		booking.CancelReason = input.Note
	}

	ok, err := repo.TransitionStatus(ctx, booking, expected)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating transport booking status")
	}
	if !ok {
		return nil, staleStateErr(enums.EntityTypeTransportBooking)
	}

	if outcome.SettlementTriggering {
		if err := s.emitSettled(ctx, tx, enums.AggregateTransportBooking, input, result, booking.Total); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting settlement event")
		}
	}
	if outcome.Refunding {
		if err := s.emitCancelled(ctx, tx, enums.AggregateTransportBooking, input, result); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting cancellation event")
		}
	}
	return result, nil
}

// bookingFields is the common shape the labour and transport payouts share.
type bookingFields struct {
	entityType      enums.EntityType
	entityID        uuid.UUID
	userID          uuid.UUID
	partnerID       uuid.UUID
	total           decimal.Decimal
	paymentMethod   enums.PaymentMethod
	paymentStatus   enums.PaymentStatus
	category        enums.CommissionCategory
	paymentCategory enums.LedgerCategory
	earningCategory enums.LedgerCategory
}

// payoutBooking collects an outstanding wallet payment, credits the partner
// their net, and books the commission to the platform. Returns whether the
// payer was debited in this run.
func (s *service) payoutBooking(ctx context.Context, tx *gorm.DB, fields bookingFields, result *Result) (bool, error) {
	refType := fields.entityType
	refID := fields.entityID

	paid := false
	if fields.paymentMethod == enums.PaymentMethodWallet && fields.paymentStatus != enums.PaymentStatusCompleted {
		entry, err := s.walletSvc.DebitTx(ctx, tx, wallet.EntryInput{
			UserID:        fields.userID,
			Amount:        fields.total,
			Category:      fields.paymentCategory,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		})
		if err != nil {
			return false, err
		}
		result.Entries = append(result.Entries, *entry)
		paid = true
	}

	rate, err := s.commissionSvc.RateForTx(ctx, tx, fields.category, nil)
	if err != nil {
		return false, err
	}
	split := s.commissionSvc.Split(fields.total, rate)

	entry, err := s.walletSvc.CreditTx(ctx, tx, wallet.EntryInput{
		UserID:        fields.partnerID,
		Amount:        split.Net,
		Category:      fields.earningCategory,
		ReferenceType: &refType,
		ReferenceID:   &refID,
	})
	if err != nil {
		return false, err
	}
	result.Entries = append(result.Entries, *entry)

	if split.Commission.IsPositive() {
		entry, err := s.walletSvc.CreditTx(ctx, tx, wallet.EntryInput{
			UserID:        s.platformAccountID,
			Amount:        split.Commission,
			Category:      enums.LedgerCategoryCommissionDeduction,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		})
		if err != nil {
			return false, err
		}
		result.Entries = append(result.Entries, *entry)
	}
	result.Commission = split.Commission
	return paid, nil
}

func (s *service) refundBooking(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID, userID uuid.UUID, total decimal.Decimal, category enums.LedgerCategory, input TransitionInput, result *Result) (decimal.Decimal, error) {
	refType := entityType
	refID := entityID
	entry, err := s.walletSvc.CreditTx(ctx, tx, wallet.EntryInput{
		UserID:        userID,
		Amount:        total,
		Category:      category,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		Description:   input.Note,
	})
	if err != nil {
		return decimal.Zero, err
	}
	result.Entries = append(result.Entries, *entry)
	result.RefundAmount = total
	result.Refunded = true
	return total, nil
}
