package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// LedgerEntryRef is the journal slice of a settlement event: enough for a
// downstream consumer to reconcile without re-reading the ledger.
type LedgerEntryRef struct {
	TransactionID uuid.UUID             `json:"transaction_id"`
	UserID        uuid.UUID             `json:"user_id"`
	Direction     enums.LedgerDirection `json:"direction"`
	Category      enums.LedgerCategory  `json:"category"`
	Amount        decimal.Decimal       `json:"amount"`
}

// SettlementCompletedEvent is emitted when a trigger transition posted its
// ledger entries.
type SettlementCompletedEvent struct {
	EntityType enums.EntityType `json:"entity_type"`
	EntityID   uuid.UUID        `json:"entity_id"`
	GrossTotal decimal.Decimal  `json:"gross_total"`
	Commission decimal.Decimal  `json:"commission"`
	Entries    []LedgerEntryRef `json:"entries"`
	SettledAt  time.Time        `json:"settled_at"`
}

// EntityCancelledEvent is emitted when a cancellation lands, whether or not a
// refund was due.
type EntityCancelledEvent struct {
	EntityType   enums.EntityType `json:"entity_type"`
	EntityID     uuid.UUID        `json:"entity_id"`
	RefundAmount decimal.Decimal  `json:"refund_amount"`
	Refunded     bool             `json:"refunded"`
	Reason       *string          `json:"reason,omitempty"`
	CancelledAt  time.Time        `json:"cancelled_at"`
}

// WalletAdjustedEvent is emitted for manual admin credits and debits.
type WalletAdjustedEvent struct {
	UserID        uuid.UUID             `json:"user_id"`
	TransactionID uuid.UUID             `json:"transaction_id"`
	Direction     enums.LedgerDirection `json:"direction"`
	Category      enums.LedgerCategory  `json:"category"`
	Amount        decimal.Decimal       `json:"amount"`
	BalanceAfter  decimal.Decimal       `json:"balance_after"`
}
