package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// TransitionInput is one lifecycle transition request against a
// transaction-bearing entity.
type TransitionInput struct {
	EntityType      enums.EntityType
	EntityID        uuid.UUID
	RequestedStatus string
	ActorID         uuid.UUID
	Note            *string
	// PartnerID attaches a partner on "assigned" transitions for bookings
	// and deliveries.
	PartnerID *uuid.UUID
	// CODCollected must be true when marking a cash-on-delivery assignment
	// delivered; it confirms the partner holds the cash being reconciled.
	CODCollected bool
}

// Result reports what a transition did. AlreadySettled means the call was an
// idempotent no-op: the entity had settled before and nothing moved.
type Result struct {
	EntityType        enums.EntityType           `json:"entity_type"`
	EntityID          uuid.UUID                  `json:"entity_id"`
	Status            string                     `json:"status"`
	SettlementApplied bool                       `json:"settlement_applied"`
	AlreadySettled    bool                       `json:"already_settled"`
	Refunded          bool                       `json:"refunded"`
	RefundAmount      decimal.Decimal            `json:"refund_amount"`
	Commission        decimal.Decimal            `json:"commission"`
	Entries           []models.WalletTransaction `json:"entries"`
}
