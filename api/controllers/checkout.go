package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/api/responses"
	"github.com/agrisetu/agrisetu-backend/api/validators"
	"github.com/agrisetu/agrisetu-backend/internal/orders"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

type checkoutRequest struct {
	BuyerID         uuid.UUID          `json:"buyer_id" validate:"required"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
	DeliveryFee     string             `json:"delivery_fee,omitempty"`
	DeliveryAddress *types.Address     `json:"delivery_address,omitempty"`
	Items           []checkoutLineItem `json:"items" validate:"required,min=1,dive"`
}

type checkoutLineItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,min=1"`
}

type orderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	SellerID    uuid.UUID `json:"seller_id"`
	Qty         int       `json:"qty"`
	Unit        string    `json:"unit"`
	UnitPrice   string    `json:"unit_price"`
	Total       string    `json:"total"`
}

type orderResponse struct {
	ID                uuid.UUID           `json:"id"`
	OrderNumber       string              `json:"order_number"`
	BuyerID           uuid.UUID           `json:"buyer_id"`
	Subtotal          string              `json:"subtotal"`
	DeliveryFee       string              `json:"delivery_fee"`
	Total             string              `json:"total"`
	PaymentMethod     string              `json:"payment_method"`
	PaymentStatus     string              `json:"payment_status"`
	Status            string              `json:"status"`
	StatusChangedAt   *time.Time          `json:"status_changed_at,omitempty"`
	RefundAmount      string              `json:"refund_amount"`
	SettlementApplied bool                `json:"settlement_applied"`
	Items             []orderItemResponse `json:"items"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SellerID:    item.SellerID,
			Qty:         item.Qty,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Total:       item.Total.StringFixed(2),
		})
	}
	resp := orderResponse{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		BuyerID:           order.BuyerID,
		Subtotal:          order.Subtotal.StringFixed(2),
		DeliveryFee:       order.DeliveryFee.StringFixed(2),
		Total:             order.Total.StringFixed(2),
		PaymentMethod:     string(order.PaymentMethod),
		PaymentStatus:     string(order.PaymentStatus),
		Status:            string(order.Status),
		RefundAmount:      order.RefundAmount.StringFixed(2),
		SettlementApplied: order.SettlementApplied,
		Items:             items,
	}
	if last := order.StatusHistory.Last(); last != nil {
		changed := last.Timestamp
		resp.StatusChangedAt = &changed
	}
	return resp
}

// Checkout places an order from the submitted lines. Wallet payments debit
// the buyer atomically with order creation.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method"))
			return
		}

		deliveryFee := decimal.Zero
		if payload.DeliveryFee != "" {
			deliveryFee, err = decimal.NewFromString(payload.DeliveryFee)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery fee"))
				return
			}
		}

		items := make([]orders.OrderItemInput, 0, len(payload.Items))
		for _, line := range payload.Items {
			items = append(items, orders.OrderItemInput{ProductID: line.ProductID, Qty: line.Qty})
		}

		order, err := svc.PlaceOrder(r.Context(), orders.PlaceOrderInput{
			BuyerID:         payload.BuyerID,
			Items:           items,
			PaymentMethod:   method,
			DeliveryFee:     deliveryFee,
			DeliveryAddress: payload.DeliveryAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

// GetOrder reads one order with its line items.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := uuidParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetByID(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}
