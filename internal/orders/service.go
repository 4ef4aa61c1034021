package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service handles order placement and reads. Status changes after placement
// go through the settlement orchestrator, never through this service.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// RestoreStockTx returns reserved quantities to the catalogue inside the
	// caller's transaction, used when a paid order is cancelled.
	RestoreStockTx(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
}

type service struct {
	tx        txRunner
	repo      Repository
	walletSvc wallet.Service
	logg      *logger.Logger
}

// NewService wires the orders service.
func NewService(tx txRunner, repo Repository, walletSvc wallet.Service, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if walletSvc == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	return &service{tx: tx, repo: repo, walletSvc: walletSvc, logg: logg}, nil
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if input.BuyerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "buyer id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "order contains no items")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil || item.Qty <= 0 {
			return nil, apperrors.New(apperrors.CodeValidation, "each item needs a product id and a positive quantity")
		}
	}
	deliveryFee := input.DeliveryFee.Round(2)
	if deliveryFee.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "delivery fee cannot be negative")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		orderID := uuid.New()
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			product, err := repo.FindProduct(ctx, line.ProductID)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "loading product")
			}
			if product == nil {
				return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("product %s not found", line.ProductID))
			}
			reserved, err := repo.ReserveStock(ctx, product.ID, line.Qty)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "reserving stock")
			}
			if !reserved {
				return apperrors.New(apperrors.CodeConflict, fmt.Sprintf("insufficient stock for %s", product.Name)).
					WithDetails(map[string]any{"product_id": product.ID, "requested": line.Qty, "available": product.StockQty})
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
			items = append(items, models.OrderItem{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   product.ID,
				ProductName: product.Name,
				SellerID:    product.SellerID,
				Qty:         line.Qty,
				Unit:        product.Unit,
				UnitPrice:   product.Price,
				Total:       lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		order = &models.Order{
			ID:              orderID,
			OrderNumber:     newOrderNumber(),
			BuyerID:         input.BuyerID,
			DeliveryAddress: input.DeliveryAddress,
			Subtotal:        subtotal,
			DeliveryFee:     deliveryFee,
			Total:           subtotal.Add(deliveryFee),
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   enums.PaymentStatusPending,
			Status:          enums.OrderStatusPlaced,
			StatusHistory:   types.StatusHistory{}.Append(string(enums.OrderStatusPlaced), &input.BuyerID, nil),
		}

		if input.PaymentMethod == enums.PaymentMethodWallet {
			refType := enums.EntityTypeOrder
			refID := orderID
			if _, err := s.walletSvc.DebitTx(ctx, tx, wallet.EntryInput{
				UserID:        input.BuyerID,
				Amount:        order.Total,
				Category:      enums.LedgerCategoryOrderPayment,
				ReferenceType: &refType,
				ReferenceID:   &refID,
			}); err != nil {
				return err
			}
			now := time.Now().UTC()
			order.PaymentStatus = enums.PaymentStatusCompleted
			order.PaidAt = &now
		}

		if err := repo.Create(ctx, order); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "creating order")
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "creating order items")
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"total":        order.Total.StringFixed(2),
		})
		s.logg.Info(logCtx, "order placed")
	}
	return order, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading order")
	}
	if order == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) RestoreStockTx(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	repo := s.repo.WithTx(tx)
	for _, item := range items {
		if err := repo.RestoreStock(ctx, item.ProductID, item.Qty); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "restoring stock")
		}
	}
	return nil
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return "ORD-" + suffix
}
