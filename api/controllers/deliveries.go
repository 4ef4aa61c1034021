package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/api/responses"
	"github.com/agrisetu/agrisetu-backend/api/validators"
	"github.com/agrisetu/agrisetu-backend/internal/delivery"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
)

type createDeliveryRequest struct {
	OrderID     uuid.UUID  `json:"order_id" validate:"required"`
	PartnerID   *uuid.UUID `json:"partner_id,omitempty"`
	DeliveryFee string     `json:"delivery_fee" validate:"required"`
	IsCOD       bool       `json:"is_cod"`
	CODAmount   string     `json:"cod_amount,omitempty"`
}

type deliveryResponse struct {
	ID                uuid.UUID  `json:"id"`
	DeliveryNumber    string     `json:"delivery_number"`
	OrderID           uuid.UUID  `json:"order_id"`
	PartnerID         *uuid.UUID `json:"partner_id,omitempty"`
	DeliveryFee       string     `json:"delivery_fee"`
	IsCOD             bool       `json:"is_cod"`
	CODAmount         string     `json:"cod_amount"`
	CODCollected      bool       `json:"cod_collected"`
	Status            string     `json:"status"`
	SettlementApplied bool       `json:"settlement_applied"`
}

func newDeliveryResponse(assignment *models.DeliveryAssignment) deliveryResponse {
	return deliveryResponse{
		ID:                assignment.ID,
		DeliveryNumber:    assignment.DeliveryNumber,
		OrderID:           assignment.OrderID,
		PartnerID:         assignment.PartnerID,
		DeliveryFee:       assignment.DeliveryFee.StringFixed(2),
		IsCOD:             assignment.IsCOD,
		CODAmount:         assignment.CODAmount.StringFixed(2),
		CODCollected:      assignment.CODCollected,
		Status:            string(assignment.Status),
		SettlementApplied: assignment.SettlementApplied,
	}
}

// CreateDelivery assigns an order to the delivery network.
func CreateDelivery(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		var payload createDeliveryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fee, err := decimal.NewFromString(payload.DeliveryFee)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "delivery_fee must be a decimal string"))
			return
		}
		codAmount := decimal.Zero
		if payload.CODAmount != "" {
			codAmount, err = decimal.NewFromString(payload.CODAmount)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cod_amount must be a decimal string"))
				return
			}
		}

		assignment, err := svc.Create(r.Context(), delivery.CreateInput{
			OrderID:     payload.OrderID,
			PartnerID:   payload.PartnerID,
			DeliveryFee: fee,
			IsCOD:       payload.IsCOD,
			CODAmount:   codAmount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newDeliveryResponse(assignment))
	}
}

// GetDelivery reads one delivery assignment.
func GetDelivery(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		id, err := uuidParam(r, "deliveryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDeliveryResponse(assignment))
	}
}
