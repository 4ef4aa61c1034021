package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/bookings"
	"github.com/agrisetu/agrisetu-backend/internal/commission"
	"github.com/agrisetu/agrisetu-backend/internal/delivery"
	"github.com/agrisetu/agrisetu-backend/internal/lifecycle"
	"github.com/agrisetu/agrisetu-backend/internal/orders"
	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/metrics"
	"github.com/agrisetu/agrisetu-backend/pkg/outbox"
	"github.com/agrisetu/agrisetu-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type stockRestorer interface {
	RestoreStockTx(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
}

// Service is the settlement orchestrator: the only component allowed to pair
// a lifecycle transition with ledger writes. Every run is one transaction;
// a failure anywhere rolls back the status change and every ledger leg.
type Service interface {
	SettleTransition(ctx context.Context, input TransitionInput) (*Result, error)
}

type service struct {
	tx                txRunner
	ordersRepo        orders.Repository
	labourRepo        bookings.LabourRepository
	transportRepo     bookings.TransportRepository
	deliveryRepo      delivery.Repository
	walletSvc         wallet.Service
	commissionSvc     commission.Service
	stock             stockRestorer
	outbox            outboxPublisher
	metrics           *metrics.SettlementMetrics
	logg              *logger.Logger
	platformAccountID uuid.UUID
}

// Config bundles the orchestrator's collaborators.
type Config struct {
	Tx                txRunner
	OrdersRepo        orders.Repository
	LabourRepo        bookings.LabourRepository
	TransportRepo     bookings.TransportRepository
	DeliveryRepo      delivery.Repository
	WalletSvc         wallet.Service
	CommissionSvc     commission.Service
	Stock             stockRestorer
	Outbox            outboxPublisher
	Metrics           *metrics.SettlementMetrics
	Logger            *logger.Logger
	PlatformAccountID uuid.UUID
}

// NewService wires the settlement orchestrator.
func NewService(cfg Config) (Service, error) {
	if cfg.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cfg.OrdersRepo == nil || cfg.LabourRepo == nil || cfg.TransportRepo == nil || cfg.DeliveryRepo == nil {
		return nil, fmt.Errorf("entity repositories required")
	}
	if cfg.WalletSvc == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	if cfg.CommissionSvc == nil {
		return nil, fmt.Errorf("commission service required")
	}
	if cfg.Stock == nil {
		return nil, fmt.Errorf("stock restorer required")
	}
	if cfg.PlatformAccountID == uuid.Nil {
		return nil, fmt.Errorf("platform account id required")
	}
	return &service{
		tx:                cfg.Tx,
		ordersRepo:        cfg.OrdersRepo,
		labourRepo:        cfg.LabourRepo,
		transportRepo:     cfg.TransportRepo,
		deliveryRepo:      cfg.DeliveryRepo,
		walletSvc:         cfg.WalletSvc,
		commissionSvc:     cfg.CommissionSvc,
		stock:             cfg.Stock,
		outbox:            cfg.Outbox,
		metrics:           cfg.Metrics,
		logg:              cfg.Logger,
		platformAccountID: cfg.PlatformAccountID,
	}, nil
}

func (s *service) SettleTransition(ctx context.Context, input TransitionInput) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	started := time.Now()
	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		switch input.EntityType {
		case enums.EntityTypeOrder:
			result, txErr = s.settleOrder(ctx, tx, input)
		case enums.EntityTypeLabourBooking:
			result, txErr = s.settleLabour(ctx, tx, input)
		case enums.EntityTypeTransportBooking:
			result, txErr = s.settleTransport(ctx, tx, input)
		default:
			result, txErr = s.settleDelivery(ctx, tx, input)
		}
		return txErr
	})

	entityLabel := string(input.EntityType)
	s.metrics.ObserveDuration(entityLabel, time.Since(started))
	if err != nil {
		s.metrics.IncFailure(entityLabel)
		return nil, err
	}

	switch {
	case result.AlreadySettled:
		s.metrics.IncNoop(entityLabel)
	case result.SettlementApplied:
		s.metrics.IncSettled(entityLabel)
	}
	if result.Refunded {
		s.metrics.IncRefunded(entityLabel)
	}

	if s.logg != nil {
		logCtx := s.logg.WithEntityID(ctx, input.EntityID.String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"entity_type":     input.EntityType,
			"status":          result.Status,
			"already_settled": result.AlreadySettled,
			"refunded":        result.Refunded,
		})
		s.logg.Info(logCtx, "transition settled")
	}
	return result, nil
}

func validateInput(input TransitionInput) error {
	var err error
	if !input.EntityType.IsValid() {
		err = multierr.Append(err, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid entity type %q", input.EntityType)))
	}
	if input.EntityID == uuid.Nil {
		err = multierr.Append(err, apperrors.New(apperrors.CodeValidation, "entity id is required"))
	}
	if input.RequestedStatus == "" {
		err = multierr.Append(err, apperrors.New(apperrors.CodeValidation, "requested status is required"))
	}
	if err != nil {
		if combined := multierr.Errors(err); len(combined) == 1 {
			return combined[0]
		}
		return apperrors.Wrap(apperrors.CodeValidation, err, "invalid transition request")
	}
	return nil
}

// outcomeFor validates the transition against the entity's table, short
// circuiting to an idempotent no-op when a trigger status is requested again
// on an already settled entity.
func outcomeFor(entity enums.EntityType, current, requested string, settled bool) (lifecycle.Outcome, bool, error) {
	table, err := lifecycle.TableFor(entity)
	if err != nil {
		return lifecycle.Outcome{}, false, err
	}
	if settled && requested == current && table.Triggers[requested] {
		return lifecycle.Outcome{From: current, To: current}, true, nil
	}
	outcome, err := table.Apply(current, requested)
	if err != nil {
		return lifecycle.Outcome{}, false, err
	}
	return outcome, false, nil
}

func (s *service) emitSettled(ctx context.Context, tx *gorm.DB, aggregate enums.OutboxAggregateType, input TransitionInput, result *Result, gross decimal.Decimal) error {
	if s.outbox == nil {
		return nil
	}
	entries := make([]payloads.LedgerEntryRef, len(result.Entries))
	for i, entry := range result.Entries {
		entries[i] = payloads.LedgerEntryRef{
			TransactionID: entry.ID,
			UserID:        entry.UserID,
			Direction:     entry.Direction,
			Category:      entry.Category,
			Amount:        entry.Amount,
		}
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventSettlementCompleted,
		AggregateType: aggregate,
		AggregateID:   input.EntityID,
		Actor:         &outbox.ActorRef{UserID: input.ActorID},
		Version:       1,
		Data: payloads.SettlementCompletedEvent{
			EntityType: input.EntityType,
			EntityID:   input.EntityID,
			GrossTotal: gross,
			Commission: result.Commission,
			Entries:    entries,
			SettledAt:  time.Now().UTC(),
		},
	})
}

func (s *service) emitCancelled(ctx context.Context, tx *gorm.DB, aggregate enums.OutboxAggregateType, input TransitionInput, result *Result) error {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventEntityCancelled,
		AggregateType: aggregate,
		AggregateID:   input.EntityID,
		Actor:         &outbox.ActorRef{UserID: input.ActorID},
		Version:       1,
		Data: payloads.EntityCancelledEvent{
			EntityType:   input.EntityType,
			EntityID:     input.EntityID,
			RefundAmount: result.RefundAmount,
			Refunded:     result.Refunded,
			Reason:       input.Note,
			CancelledAt:  time.Now().UTC(),
		},
	})
}

func staleStateErr(entity enums.EntityType) error {
	return apperrors.New(apperrors.CodeStateConflict,
		fmt.Sprintf("%s changed concurrently, reload and retry", entity))
}
