package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

// PlaceOrderInput is the checkout request for one buyer cart. DeliveryFee is
// charged on top of the item subtotal; zero means free delivery.
type PlaceOrderInput struct {
	BuyerID         uuid.UUID
	Items           []OrderItemInput
	PaymentMethod   enums.PaymentMethod
	DeliveryFee     decimal.Decimal
	DeliveryAddress *types.Address
}

// OrderItemInput references a product and quantity; price and seller come
// from the catalogue at checkout time.
type OrderItemInput struct {
	ProductID uuid.UUID
	Qty       int
}
