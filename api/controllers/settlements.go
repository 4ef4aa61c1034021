package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu-backend/api/responses"
	"github.com/agrisetu/agrisetu-backend/api/validators"
	"github.com/agrisetu/agrisetu-backend/internal/settlement"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
)

type transitionRequest struct {
	EntityType      string     `json:"entity_type" validate:"required"`
	EntityID        uuid.UUID  `json:"entity_id" validate:"required"`
	RequestedStatus string     `json:"requested_status" validate:"required"`
	ActorID         uuid.UUID  `json:"actor_id" validate:"required"`
	Note            *string    `json:"note,omitempty"`
	PartnerID       *uuid.UUID `json:"partner_id,omitempty"`
	CODCollected    bool       `json:"cod_collected"`
}

type transitionResponse struct {
	EntityType        string          `json:"entity_type"`
	EntityID          uuid.UUID       `json:"entity_id"`
	Status            string          `json:"status"`
	SettlementApplied bool            `json:"settlement_applied"`
	AlreadySettled    bool            `json:"already_settled"`
	Refunded          bool            `json:"refunded"`
	RefundAmount      string          `json:"refund_amount"`
	Commission        string          `json:"commission"`
	Entries           []entryResponse `json:"entries"`
}

// SettleTransition drives one lifecycle transition through the settlement
// orchestrator.
func SettleTransition(svc settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlement service unavailable"))
			return
		}

		var payload transitionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entityType, err := enums.ParseEntityType(payload.EntityType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid entity type"))
			return
		}

		result, err := svc.SettleTransition(r.Context(), settlement.TransitionInput{
			EntityType:      entityType,
			EntityID:        payload.EntityID,
			RequestedStatus: payload.RequestedStatus,
			ActorID:         payload.ActorID,
			Note:            sanitizeFreeText(payload.Note),
			PartnerID:       payload.PartnerID,
			CODCollected:    payload.CODCollected,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, transitionResponse{
			EntityType:        string(result.EntityType),
			EntityID:          result.EntityID,
			Status:            result.Status,
			SettlementApplied: result.SettlementApplied,
			AlreadySettled:    result.AlreadySettled,
			Refunded:          result.Refunded,
			RefundAmount:      result.RefundAmount.StringFixed(2),
			Commission:        result.Commission.StringFixed(2),
			Entries:           newEntryResponses(result.Entries),
		})
	}
}
