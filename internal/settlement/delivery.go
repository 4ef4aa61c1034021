package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

func (s *service) settleDelivery(ctx context.Context, tx *gorm.DB, input TransitionInput) (*Result, error) {
	repo := s.deliveryRepo.WithTx(tx)
	assignment, err := repo.FindByID(ctx, input.EntityID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading delivery assignment")
	}
	if assignment == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "delivery assignment not found")
	}

	outcome, noop, err := outcomeFor(enums.EntityTypeDeliveryAssignment, string(assignment.Status), input.RequestedStatus, assignment.SettlementApplied)
	if err != nil {
		return nil, err
	}
	result := &Result{
		EntityType:   enums.EntityTypeDeliveryAssignment,
		EntityID:     assignment.ID,
		Status:       outcome.To,
		RefundAmount: decimal.Zero,
		Commission:   decimal.Zero,
	}
	if noop {
		result.SettlementApplied = true
		result.AlreadySettled = true
		return result, nil
	}

	expected := assignment.Status
	assignment.Status = enums.DeliveryStatus(outcome.To)
	assignment.StatusHistory = assignment.StatusHistory.Append(outcome.To, actorRef(input.ActorID), input.Note)

	switch assignment.Status {
	case enums.DeliveryStatusAssigned:
		if input.PartnerID != nil {
			assignment.PartnerID = input.PartnerID
		}
	case enums.DeliveryStatusPickedUp:
		now := time.Now().UTC()
		assignment.PickedUpAt = &now
	case enums.DeliveryStatusFailed:
		assignment.FailureReason = input.Note
	}

	if outcome.SettlementTriggering {
		if err := s.payoutDelivery(ctx, tx, assignment, input, result); err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		assignment.DeliveredAt = &now
		assignment.SettlementApplied = true
		result.SettlementApplied = true
	}

	ok, err := repo.TransitionStatus(ctx, assignment, expected)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating delivery status")
	}
	if !ok {
		return nil, staleStateErr(enums.EntityTypeDeliveryAssignment)
	}

	if outcome.SettlementTriggering {
		if err := s.emitSettled(ctx, tx, enums.AggregateDeliveryAssignment, input, result, assignment.DeliveryFee); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting settlement event")
		}
	}
	if outcome.Refunding {
		if err := s.emitCancelled(ctx, tx, enums.AggregateDeliveryAssignment, input, result); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting cancellation event")
		}
	}
	return result, nil
}

// payoutDelivery credits the partner their fee. COD deliveries additionally
// book the cash the partner collected as a debt back to the platform, so one
// delivered transition yields two journal entries.
func (s *service) payoutDelivery(ctx context.Context, tx *gorm.DB, assignment *models.DeliveryAssignment, input TransitionInput, result *Result) error {
	if assignment.PartnerID == nil {
		return apperrors.New(apperrors.CodeStateConflict, "delivery assignment has no partner to pay")
	}
	if assignment.IsCOD && !input.CODCollected {
		return apperrors.New(apperrors.CodeValidation, "cod delivery cannot complete without confirming cash collection")
	}

	refType := enums.EntityTypeDeliveryAssignment
	refID := assignment.ID
	partnerID := *assignment.PartnerID

	if assignment.DeliveryFee.IsPositive() {
		entry, err := s.walletSvc.CreditTx(ctx, tx, wallet.EntryInput{
			UserID:        partnerID,
			Amount:        assignment.DeliveryFee,
			Category:      enums.LedgerCategoryDeliveryEarning,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		})
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, *entry)
	}

	if assignment.IsCOD {
		entry, err := s.walletSvc.DebitTx(ctx, tx, wallet.EntryInput{
			UserID:        partnerID,
			Amount:        assignment.CODAmount,
			Category:      enums.LedgerCategoryCODSettlement,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		})
		if err != nil {
			return err
		}
		assignment.CODCollected = true
		result.Entries = append(result.Entries, *entry)
	}
	return nil
}
