package settlement

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

func (s *service) settleOrder(ctx context.Context, tx *gorm.DB, input TransitionInput) (*Result, error) {
	repo := s.ordersRepo.WithTx(tx)
	order, err := repo.FindByID(ctx, input.EntityID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading order")
	}
	if order == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}

	outcome, noop, err := outcomeFor(enums.EntityTypeOrder, string(order.Status), input.RequestedStatus, order.SettlementApplied)
	if err != nil {
		return nil, err
	}
	result := &Result{
		EntityType:   enums.EntityTypeOrder,
		EntityID:     order.ID,
		Status:       outcome.To,
		RefundAmount: decimal.Zero,
		Commission:   decimal.Zero,
	}
	if noop {
		result.SettlementApplied = true
		result.AlreadySettled = true
		return result, nil
	}

	expected := order.Status
	order.Status = enums.OrderStatus(outcome.To)
	order.StatusHistory = order.StatusHistory.Append(outcome.To, actorRef(input.ActorID), input.Note)

	if outcome.SettlementTriggering {
		if err := s.payoutOrder(ctx, tx, order, result); err != nil {
			return nil, err
		}
		order.SettlementApplied = true
		result.SettlementApplied = true
	}

	if outcome.Refunding {
		if err := s.refundOrder(ctx, tx, order, input, result); err != nil {
			return nil, err
		}
	}

	ok, err := repo.TransitionStatus(ctx, order, expected)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating order status")
	}
	if !ok {
		return nil, staleStateErr(enums.EntityTypeOrder)
	}

	if outcome.SettlementTriggering {
		if err := s.emitSettled(ctx, tx, enums.AggregateOrder, input, result, order.Total); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting settlement event")
		}
	}
	if outcome.Refunding {
		if err := s.emitCancelled(ctx, tx, enums.AggregateOrder, input, result); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "emitting cancellation event")
		}
	}
	return result, nil
}

// payoutOrder posts the completion legs: collect the wallet payment if it is
// still pending, then fan earnings out per seller and book the summed
// commission to the platform account.
func (s *service) payoutOrder(ctx context.Context, tx *gorm.DB, order *models.Order, result *Result) error {
	refType := enums.EntityTypeOrder
	refID := order.ID

	if order.PaymentMethod == enums.PaymentMethodWallet && order.PaymentStatus != enums.PaymentStatusCompleted {
		entry, err := s.walletSvc.DebitTx(ctx, tx, wallet.EntryInput{
			UserID:        order.BuyerID,
			Amount:        order.Total,
			Category:      enums.LedgerCategoryOrderPayment,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		})
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		order.PaymentStatus = enums.PaymentStatusCompleted
		order.PaidAt = &now
		result.Entries = append(result.Entries, *entry)
	}

	totalCommission := decimal.Zero
	for _, group := range groupBySeller(order.Items) {
		rate, err := s.commissionSvc.RateForTx(ctx, tx, enums.CommissionCategorySellerProduct, &group.sellerID)
		if err != nil {
			return err
		}
		split := s.commissionSvc.Split(group.gross, rate)
		entry, err := s.walletSvc.CreditTx(ctx, tx, wallet.EntryInput{
			UserID:        group.sellerID,
			Amount:        split.Net,
			Category:      enums.LedgerCategorySellerEarning,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		})
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, *entry)
		totalCommission = totalCommission.Add(split.Commission)
	}

	if totalCommission.IsPositive() {
		entry, err := s.walletSvc.CreditTx(ctx, tx, wallet.EntryInput{
			UserID:        s.platformAccountID,
			Amount:        totalCommission,
			Category:      enums.LedgerCategoryCommissionDeduction,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		})
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, *entry)
	}
	result.Commission = totalCommission
	return nil
}

// refundOrder reverses a completed payment and returns reserved stock. Unpaid
// orders cancel without any ledger movement.
func (s *service) refundOrder(ctx context.Context, tx *gorm.DB, order *models.Order, input TransitionInput, result *Result) error {
	if order.PaymentStatus == enums.PaymentStatusCompleted {
		refType := enums.EntityTypeOrder
		refID := order.ID
		entry, err := s.walletSvc.CreditTx(ctx, tx, wallet.EntryInput{
			UserID:        order.BuyerID,
			Amount:        order.Total,
			Category:      enums.LedgerCategoryOrderRefund,
			ReferenceType: &refType,
			ReferenceID:   &refID,
			Description:   input.Note,
		})
		if err != nil {
			return err
		}
		order.PaymentStatus = enums.PaymentStatusRefunded
		order.RefundAmount = order.Total
		result.Entries = append(result.Entries, *entry)
		result.RefundAmount = order.Total
		result.Refunded = true
	}

	if err := s.stock.RestoreStockTx(ctx, tx, order.Items); err != nil {
		return err
	}

	if order.Status == enums.OrderStatusCancelled {
		now := time.Now().UTC()
		order.CancelledAt = &now
		order.CancelReason = input.Note
		if input.ActorID != uuid.Nil {
			actor := input.ActorID
			order.CancelledBy = &actor
		}
	}
	return nil
}

type sellerGroup struct {
	sellerID uuid.UUID
	gross    decimal.Decimal
}

// groupBySeller sums line totals per seller in a stable order so the ledger
// entries come out deterministic.
func groupBySeller(items []models.OrderItem) []sellerGroup {
	sums := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, item := range items {
		sums[item.SellerID] = sums[item.SellerID].Add(item.Total)
	}
	groups := make([]sellerGroup, 0, len(sums))
	for sellerID, gross := range sums {
		groups = append(groups, sellerGroup{sellerID: sellerID, gross: gross})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].sellerID.String() < groups[j].sellerID.String()
	})
	return groups
}

func actorRef(actorID uuid.UUID) *uuid.UUID {
	if actorID == uuid.Nil {
		return nil
	}
	return &actorID
}
