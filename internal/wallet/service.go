package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/outbox"
	"github.com/agrisetu/agrisetu-backend/pkg/outbox/payloads"
	"github.com/agrisetu/agrisetu-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service is the only write path to wallet balances. Every balance change
// happens under a row lock and produces exactly one journal entry carrying
// the before and after balances.
type Service interface {
	Balance(ctx context.Context, userID uuid.UUID) (*BalanceView, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, params ListParams) (*TransactionPage, error)
	Credit(ctx context.Context, input EntryInput) (*models.WalletTransaction, error)
	Debit(ctx context.Context, input EntryInput) (*models.WalletTransaction, error)
	// CreditTx and DebitTx post inside the caller's transaction so multi-leg
	// settlements commit or roll back as one unit.
	CreditTx(ctx context.Context, tx *gorm.DB, input EntryInput) (*models.WalletTransaction, error)
	DebitTx(ctx context.Context, tx *gorm.DB, input EntryInput) (*models.WalletTransaction, error)
	AdminAdjust(ctx context.Context, input AdjustInput) (*models.WalletTransaction, error)
}

type service struct {
	tx                txRunner
	repo              Repository
	outbox            outboxPublisher
	logg              *logger.Logger
	platformAccountID uuid.UUID
}

// NewService wires the wallet service.
func NewService(tx txRunner, repo Repository, publisher outboxPublisher, logg *logger.Logger, platformAccountID uuid.UUID) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	return &service{
		tx:                tx,
		repo:              repo,
		outbox:            publisher,
		logg:              logg,
		platformAccountID: platformAccountID,
	}, nil
}

func (s *service) Balance(ctx context.Context, userID uuid.UUID) (*BalanceView, error) {
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	wallet, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading wallet")
	}
	if wallet == nil {
		// Wallets materialize on first credit; absent means zero.
		return &BalanceView{UserID: userID, Balance: decimal.Zero}, nil
	}
	view := &BalanceView{UserID: userID, Balance: wallet.Balance}
	if !wallet.LastUpdated.IsZero() {
		updated := wallet.LastUpdated
		view.LastUpdated = &updated
	}
	return view, nil
}

func (s *service) ListTransactions(ctx context.Context, userID uuid.UUID, params ListParams) (*TransactionPage, error) {
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	if params.Direction != nil && !params.Direction.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid direction filter")
	}
	if params.Category != nil && !params.Category.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid category filter")
	}

	rows, err := s.repo.ListTransactions(ctx, userID, params)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing transactions")
	}

	limit := pagination.NormalizeLimit(params.Pagination.Limit)
	page := &TransactionPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[len(page.Items)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) Credit(ctx context.Context, input EntryInput) (*models.WalletTransaction, error) {
	var entry *models.WalletTransaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = s.CreditTx(ctx, tx, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) Debit(ctx context.Context, input EntryInput) (*models.WalletTransaction, error) {
	var entry *models.WalletTransaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = s.DebitTx(ctx, tx, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) CreditTx(ctx context.Context, tx *gorm.DB, input EntryInput) (*models.WalletTransaction, error) {
	if tx == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "transaction required")
	}
	amount, err := validateEntry(input)
	if err != nil {
		return nil, err
	}

	repo := s.repo.WithTx(tx)
	wallet, err := repo.GetByUserIDForUpdate(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "locking wallet")
	}
	if wallet == nil {
		wallet = s.newWallet(input.UserID)
		if err := repo.Create(ctx, wallet); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating wallet")
		}
	}

	return s.post(ctx, repo, wallet, enums.LedgerDirectionCredit, amount, input)
}

func (s *service) DebitTx(ctx context.Context, tx *gorm.DB, input EntryInput) (*models.WalletTransaction, error) {
	if tx == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "transaction required")
	}
	amount, err := validateEntry(input)
	if err != nil {
		return nil, err
	}

	repo := s.repo.WithTx(tx)
	wallet, err := repo.GetByUserIDForUpdate(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "locking wallet")
	}

	available := decimal.Zero
	if wallet != nil {
		available = wallet.Balance
	}
	if available.LessThan(amount) {
		return nil, apperrors.New(apperrors.CodeInsufficientBalance, "insufficient wallet balance").
			WithDetails(map[string]string{
				"required":  amount.StringFixed(2),
				"available": available.StringFixed(2),
			})
	}

	return s.post(ctx, repo, wallet, enums.LedgerDirectionDebit, amount, input)
}

func (s *service) AdminAdjust(ctx context.Context, input AdjustInput) (*models.WalletTransaction, error) {
	if !input.Direction.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid adjustment direction")
	}
	category := input.Category
	if category == "" {
		category = enums.LedgerCategoryAdminAdjustment
	}
	if !category.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid adjustment category")
	}

	entryInput := EntryInput{
		UserID:      input.UserID,
		Amount:      input.Amount,
		Category:    category,
		Description: input.Description,
	}

	var entry *models.WalletTransaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		switch input.Direction {
		case enums.LedgerDirectionCredit:
			entry, txErr = s.CreditTx(ctx, tx, entryInput)
		default:
			entry, txErr = s.DebitTx(ctx, tx, entryInput)
		}
		if txErr != nil {
			return txErr
		}
		if s.outbox == nil {
			return nil
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventWalletAdjusted,
			AggregateType: enums.AggregateWallet,
			AggregateID:   entry.ID,
			Actor:         &outbox.ActorRef{UserID: input.ActorID, Role: string(enums.UserRoleAdmin)},
			Version:       1,
			Data: payloads.WalletAdjustedEvent{
				UserID:        entry.UserID,
				TransactionID: entry.ID,
				Direction:     entry.Direction,
				Category:      entry.Category,
				Amount:        entry.Amount,
				BalanceAfter:  entry.BalanceAfter,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":   input.UserID.String(),
			"direction": input.Direction,
			"amount":    input.Amount.StringFixed(2),
		})
		s.logg.Info(logCtx, "wallet adjusted by admin")
	}
	return entry, nil
}

func (s *service) post(ctx context.Context, repo Repository, wallet *models.Wallet, direction enums.LedgerDirection, amount decimal.Decimal, input EntryInput) (*models.WalletTransaction, error) {
	before := wallet.Balance
	after := before.Add(amount)
	if direction == enums.LedgerDirectionDebit {
		after = before.Sub(amount)
	}

	now := time.Now().UTC()
	wallet.Balance = after
	wallet.LastUpdated = now
	if err := repo.SaveBalance(ctx, wallet); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating balance")
	}

	entry := &models.WalletTransaction{
		ID:            uuid.New(),
		UserID:        wallet.UserID,
		Direction:     direction,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Category:      input.Category,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		Description:   input.Description,
		Metadata:      input.Metadata,
		CreatedAt:     now,
	}
	if err := repo.InsertTransaction(ctx, entry); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "recording journal entry")
	}
	return entry, nil
}

func (s *service) newWallet(userID uuid.UUID) *models.Wallet {
	kind := enums.WalletKindUser
	if userID == s.platformAccountID {
		kind = enums.WalletKindPlatform
	}
	return &models.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Kind:    kind,
		Balance: decimal.Zero,
	}
}

func validateEntry(input EntryInput) (decimal.Decimal, error) {
	if input.UserID == uuid.Nil {
		return decimal.Zero, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	if !input.Category.IsValid() {
		return decimal.Zero, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid ledger category %q", input.Category))
	}
	amount := input.Amount.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}
	return amount, nil
}
