package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

type sqliteTxRunner struct {
	db *gorm.DB
}

func (r sqliteTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit TEXT NOT NULL,
  price NUMERIC NOT NULL,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  buyer_id TEXT NOT NULL,
  delivery_address TEXT,
  subtotal NUMERIC NOT NULL,
  delivery_fee NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  paid_at DATETIME,
  refund_amount NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'placed',
  status_history TEXT,
  settlement_applied INTEGER NOT NULL DEFAULT 0,
  cancelled_at DATETIME,
  cancelled_by TEXT,
  cancel_reason TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  seller_id TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS wallets (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  kind TEXT NOT NULL DEFAULT 'user',
  balance NUMERIC NOT NULL DEFAULT 0,
  last_updated DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS wallet_transactions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  direction TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  balance_before NUMERIC NOT NULL,
  balance_after NUMERIC NOT NULL,
  category TEXT NOT NULL,
  reference_type TEXT,
  reference_id TEXT,
  description TEXT,
  metadata TEXT,
  created_at DATETIME
);`}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newOrdersService(t *testing.T) (Service, wallet.Service, Repository, *gorm.DB) {
	t.Helper()

	db := setupOrdersTestDB(t)
	runner := sqliteTxRunner{db: db}
	walletSvc, err := wallet.NewService(runner, wallet.NewRepository(db), nil, nil, uuid.New())
	require.NoError(t, err)
	repo := NewRepository(db)
	svc, err := NewService(runner, repo, walletSvc, nil)
	require.NoError(t, err)
	return svc, walletSvc, repo, db
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		SellerID: sellerID,
		Name:     "Wheat Seed",
		Unit:     "kg",
		Price:    decimal.RequireFromString(price),
		StockQty: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestPlaceOrder_WalletPayment(t *testing.T) {
	svc, walletSvc, _, db := newOrdersService(t)
	ctx := context.Background()

	buyerID := uuid.New()
	sellerA := uuid.New()
	sellerB := uuid.New()
	productA := seedProduct(t, db, sellerA, "100.00", 10)
	productB := seedProduct(t, db, sellerB, "50.00", 5)

	_, err := walletSvc.Credit(ctx, wallet.EntryInput{
		UserID:   buyerID,
		Amount:   decimal.RequireFromString("1000.00"),
		Category: enums.LedgerCategoryAdminAdjustment,
	})
	require.NoError(t, err)

	order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		BuyerID:       buyerID,
		PaymentMethod: enums.PaymentMethodWallet,
		Items: []OrderItemInput{
			{ProductID: productA.ID, Qty: 3},
			{ProductID: productB.ID, Qty: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("400.00")), "got %s", order.Total)
	assert.Equal(t, enums.PaymentStatusCompleted, order.PaymentStatus)
	require.NotNil(t, order.PaidAt)
	require.Len(t, order.Items, 2)
	assert.Equal(t, sellerA, order.Items[0].SellerID)

	view, err := walletSvc.Balance(ctx, buyerID)
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.RequireFromString("600.00")), "got %s", view.Balance)

	var stockA int
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", productA.ID).Select("stock_qty").Scan(&stockA).Error)
	assert.Equal(t, 7, stockA)
}

func TestPlaceOrder_DeliveryFeeChargedOnTopOfSubtotal(t *testing.T) {
	svc, walletSvc, _, db := newOrdersService(t)
	ctx := context.Background()

	buyerID := uuid.New()
	product := seedProduct(t, db, uuid.New(), "100.00", 5)

	_, err := walletSvc.Credit(ctx, wallet.EntryInput{
		UserID:   buyerID,
		Amount:   decimal.RequireFromString("500.00"),
		Category: enums.LedgerCategoryAdminAdjustment,
	})
	require.NoError(t, err)

	order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		BuyerID:       buyerID,
		PaymentMethod: enums.PaymentMethodWallet,
		DeliveryFee:   decimal.RequireFromString("40.00"),
		Items:         []OrderItemInput{{ProductID: product.ID, Qty: 2}},
	})
	require.NoError(t, err)
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("200.00")), "got %s", order.Subtotal)
	assert.True(t, order.DeliveryFee.Equal(decimal.RequireFromString("40.00")), "got %s", order.DeliveryFee)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("240.00")), "got %s", order.Total)

	// The wallet debit covers the fee, not just the items.
	view, err := walletSvc.Balance(ctx, buyerID)
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.RequireFromString("260.00")), "got %s", view.Balance)

	var stored models.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&stored).Error)
	assert.True(t, stored.DeliveryFee.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("240.00")))
}

func TestPlaceOrder_NegativeDeliveryFeeRejected(t *testing.T) {
	svc, _, _, db := newOrdersService(t)
	ctx := context.Background()

	product := seedProduct(t, db, uuid.New(), "10.00", 5)
	_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		BuyerID:       uuid.New(),
		PaymentMethod: enums.PaymentMethodCOD,
		DeliveryFee:   decimal.RequireFromString("-5.00"),
		Items:         []OrderItemInput{{ProductID: product.ID, Qty: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestPlaceOrder_CODLeavesPaymentPending(t *testing.T) {
	svc, _, _, db := newOrdersService(t)
	ctx := context.Background()

	product := seedProduct(t, db, uuid.New(), "75.00", 4)
	order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		BuyerID:       uuid.New(),
		PaymentMethod: enums.PaymentMethodCOD,
		Items:         []OrderItemInput{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPending, order.PaymentStatus)
	assert.Nil(t, order.PaidAt)
}

func TestPlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	svc, _, _, db := newOrdersService(t)
	ctx := context.Background()

	product := seedProduct(t, db, uuid.New(), "10.00", 2)
	_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		BuyerID:       uuid.New(),
		PaymentMethod: enums.PaymentMethodCOD,
		Items:         []OrderItemInput{{ProductID: product.ID, Qty: 3}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	var stock int
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Select("stock_qty").Scan(&stock).Error)
	assert.Equal(t, 2, stock, "failed order must not consume stock")
}

func TestPlaceOrder_InsufficientWalletRollsBackStock(t *testing.T) {
	svc, walletSvc, _, db := newOrdersService(t)
	ctx := context.Background()

	buyerID := uuid.New()
	product := seedProduct(t, db, uuid.New(), "500.00", 3)

	_, err := walletSvc.Credit(ctx, wallet.EntryInput{
		UserID:   buyerID,
		Amount:   decimal.RequireFromString("100.00"),
		Category: enums.LedgerCategoryAdminAdjustment,
	})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, PlaceOrderInput{
		BuyerID:       buyerID,
		PaymentMethod: enums.PaymentMethodWallet,
		Items:         []OrderItemInput{{ProductID: product.ID, Qty: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientBalance))

	var stock int
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Select("stock_qty").Scan(&stock).Error)
	assert.Equal(t, 3, stock)
}

func TestPlaceOrder_Validation(t *testing.T) {
	svc, _, _, _ := newOrdersService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, PlaceOrderInput{PaymentMethod: enums.PaymentMethodCOD})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	_, err = svc.PlaceOrder(ctx, PlaceOrderInput{
		BuyerID:       uuid.New(),
		PaymentMethod: enums.PaymentMethod("barter"),
		Items:         []OrderItemInput{{ProductID: uuid.New(), Qty: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestTransitionStatus_StaleStateReturnsFalse(t *testing.T) {
	_, _, repo, db := newOrdersService(t)
	ctx := context.Background()

	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   newOrderNumber(),
		BuyerID:       uuid.New(),
		Subtotal:      decimal.RequireFromString("100.00"),
		Total:         decimal.RequireFromString("100.00"),
		PaymentMethod: enums.PaymentMethodCOD,
		PaymentStatus: enums.PaymentStatusPending,
		Status:        enums.OrderStatusPlaced,
	}
	require.NoError(t, db.Omit("Items").Create(order).Error)

	order.Status = enums.OrderStatusProcessing
	order.StatusHistory = order.StatusHistory.Append(string(enums.OrderStatusProcessing), nil, nil)
	ok, err := repo.TransitionStatus(ctx, order, enums.OrderStatusPlaced)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second caller still expects "placed"; the row has moved on.
	order.Status = enums.OrderStatusConfirmed
	ok, err = repo.TransitionStatus(ctx, order, enums.OrderStatusPlaced)
	require.NoError(t, err)
	assert.False(t, ok)

	fresh, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, fresh.Status)
}

func TestRestoreStockTx(t *testing.T) {
	svc, _, _, db := newOrdersService(t)
	ctx := context.Background()

	product := seedProduct(t, db, uuid.New(), "20.00", 5)
	items := []models.OrderItem{{ProductID: product.ID, Qty: 2}}

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.RestoreStockTx(ctx, tx, items)
	}))

	var stock int
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Select("stock_qty").Scan(&stock).Error)
	assert.Equal(t, 7, stock)
}
