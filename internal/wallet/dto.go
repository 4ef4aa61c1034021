package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	"github.com/agrisetu/agrisetu-backend/pkg/pagination"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

// EntryInput describes one wallet movement. Amount must be positive; the
// direction comes from the operation (Credit/Debit), not the input.
type EntryInput struct {
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Category      enums.LedgerCategory
	ReferenceType *enums.EntityType
	ReferenceID   *uuid.UUID
	Description   *string
	Metadata      types.JSONMap
}

// AdjustInput is a manual admin credit or debit against a wallet.
type AdjustInput struct {
	UserID      uuid.UUID
	Direction   enums.LedgerDirection
	Amount      decimal.Decimal
	Category    enums.LedgerCategory
	Description *string
	ActorID     uuid.UUID
}

// BalanceView is the read model returned to balance queries. Wallets are
// created lazily, so a user without a wallet row reads as zero.
type BalanceView struct {
	UserID      uuid.UUID       `json:"user_id"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
}

// ListParams filters the transaction journal for one user.
type ListParams struct {
	Pagination pagination.Params
	Direction  *enums.LedgerDirection
	Category   *enums.LedgerCategory
	From       *time.Time
	To         *time.Time
}

// TransactionPage is one page of journal entries, newest first.
type TransactionPage struct {
	Items      []models.WalletTransaction `json:"items"`
	NextCursor string                     `json:"next_cursor,omitempty"`
}
