package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/outbox"
)

type sqliteTxRunner struct {
	db *gorm.DB
}

func (r sqliteTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type capturingPublisher struct {
	events []outbox.DomainEvent
}

func (p *capturingPublisher) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

func newTestService(t *testing.T, platformID uuid.UUID) (Service, *capturingPublisher, *gorm.DB) {
	t.Helper()

	db := setupWalletTestDB(t)
	publisher := &capturingPublisher{}
	svc, err := NewService(sqliteTxRunner{db: db}, NewRepository(db), publisher, nil, platformID)
	require.NoError(t, err)
	return svc, publisher, db
}

func TestService_CreditCreatesWalletLazily(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())
	ctx := context.Background()
	userID := uuid.New()

	entry, err := svc.Credit(ctx, EntryInput{
		UserID:   userID,
		Amount:   decimal.RequireFromString("100.00"),
		Category: enums.LedgerCategorySellerEarning,
	})
	require.NoError(t, err)
	assert.True(t, entry.BalanceBefore.IsZero())
	assert.True(t, entry.BalanceAfter.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, enums.LedgerDirectionCredit, entry.Direction)

	view, err := svc.Balance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.RequireFromString("100.00")), "got %s", view.Balance)
}

func TestService_BalanceForUnknownUserIsZero(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())

	view, err := svc.Balance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, view.Balance.IsZero())
	assert.Nil(t, view.LastUpdated)
}

func TestService_DebitInsufficientBalance(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Credit(ctx, EntryInput{
		UserID:   userID,
		Amount:   decimal.RequireFromString("1000.00"),
		Category: enums.LedgerCategorySellerEarning,
	})
	require.NoError(t, err)

	_, err = svc.Debit(ctx, EntryInput{
		UserID:   userID,
		Amount:   decimal.RequireFromString("600.00"),
		Category: enums.LedgerCategoryWithdrawal,
	})
	require.NoError(t, err)

	_, err = svc.Debit(ctx, EntryInput{
		UserID:   userID,
		Amount:   decimal.RequireFromString("600.00"),
		Category: enums.LedgerCategoryWithdrawal,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientBalance))

	// The failed debit must not have touched the balance.
	view, err := svc.Balance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.RequireFromString("400.00")), "got %s", view.Balance)
}

func TestService_DebitUnknownUserIsInsufficient(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())

	_, err := svc.Debit(context.Background(), EntryInput{
		UserID:   uuid.New(),
		Amount:   decimal.RequireFromString("1.00"),
		Category: enums.LedgerCategoryWithdrawal,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientBalance))
}

func TestService_RejectsNonPositiveAmounts(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())
	ctx := context.Background()

	for _, amount := range []string{"0", "-5.00"} {
		_, err := svc.Credit(ctx, EntryInput{
			UserID:   uuid.New(),
			Amount:   decimal.RequireFromString(amount),
			Category: enums.LedgerCategoryBonus,
		})
		require.Error(t, err, "amount %s", amount)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	}
}

func TestService_RejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())

	_, err := svc.Credit(context.Background(), EntryInput{
		UserID:   uuid.New(),
		Amount:   decimal.RequireFromString("10.00"),
		Category: enums.LedgerCategory("mystery"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestService_JournalCarriesBalanceChain(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())
	ctx := context.Background()
	userID := uuid.New()

	steps := []struct {
		direction enums.LedgerDirection
		amount    string
		before    string
		after     string
	}{
		{enums.LedgerDirectionCredit, "100.00", "0", "100.00"},
		{enums.LedgerDirectionDebit, "40.00", "100.00", "60.00"},
		{enums.LedgerDirectionCredit, "10.50", "60.00", "70.50"},
	}
	for _, step := range steps {
		input := EntryInput{
			UserID:   userID,
			Amount:   decimal.RequireFromString(step.amount),
			Category: enums.LedgerCategoryAdminAdjustment,
		}
		var entry *models.WalletTransaction
		var err error
		if step.direction == enums.LedgerDirectionCredit {
			entry, err = svc.Credit(ctx, input)
		} else {
			entry, err = svc.Debit(ctx, input)
		}
		require.NoError(t, err)
		assert.True(t, entry.BalanceBefore.Equal(decimal.RequireFromString(step.before)), "before: got %s want %s", entry.BalanceBefore, step.before)
		assert.True(t, entry.BalanceAfter.Equal(decimal.RequireFromString(step.after)), "after: got %s want %s", entry.BalanceAfter, step.after)
	}

	page, err := svc.ListTransactions(ctx, userID, ListParams{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Empty(t, page.NextCursor)
}

func TestService_ListTransactionsStorageFailureIsInternal(t *testing.T) {
	svc, _, db := newTestService(t, uuid.New())

	// A broken journal table is the store's fault, not the caller's.
	require.NoError(t, db.Exec(`DROP TABLE wallet_transactions`).Error)

	_, err := svc.ListTransactions(context.Background(), uuid.New(), ListParams{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
}

func TestService_AdminAdjustEmitsEvent(t *testing.T) {
	svc, publisher, _ := newTestService(t, uuid.New())
	ctx := context.Background()
	userID := uuid.New()

	entry, err := svc.AdminAdjust(ctx, AdjustInput{
		UserID:    userID,
		Direction: enums.LedgerDirectionCredit,
		Amount:    decimal.RequireFromString("25.00"),
		ActorID:   uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.LedgerCategoryAdminAdjustment, entry.Category)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, enums.EventWalletAdjusted, event.EventType)
	assert.Equal(t, enums.AggregateWallet, event.AggregateType)
	assert.Equal(t, entry.ID, event.AggregateID)
}

func TestService_AdminAdjustDebitRespectsBalance(t *testing.T) {
	svc, _, _ := newTestService(t, uuid.New())
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AdminAdjust(ctx, AdjustInput{
		UserID:    userID,
		Direction: enums.LedgerDirectionDebit,
		Amount:    decimal.RequireFromString("5.00"),
		ActorID:   uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientBalance))
}

func TestService_PlatformWalletKind(t *testing.T) {
	platformID := uuid.New()
	svc, _, db := newTestService(t, platformID)
	ctx := context.Background()

	_, err := svc.Credit(ctx, EntryInput{
		UserID:   platformID,
		Amount:   decimal.RequireFromString("10.00"),
		Category: enums.LedgerCategoryCommissionDeduction,
	})
	require.NoError(t, err)

	var wallet models.Wallet
	require.NoError(t, db.Where("user_id = ?", platformID).First(&wallet).Error)
	assert.Equal(t, enums.WalletKindPlatform, wallet.Kind)
}
