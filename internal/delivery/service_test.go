package delivery

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

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

func setupDeliveryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	assignments := `
CREATE TABLE IF NOT EXISTS delivery_assignments (
  id TEXT PRIMARY KEY,
  delivery_number TEXT NOT NULL UNIQUE,
  order_id TEXT NOT NULL,
  partner_id TEXT,
  delivery_fee NUMERIC NOT NULL DEFAULT 0,
  is_cod INTEGER NOT NULL DEFAULT 0,
  cod_amount NUMERIC NOT NULL DEFAULT 0,
  cod_collected INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  status_history TEXT,
  settlement_applied INTEGER NOT NULL DEFAULT 0,
  picked_up_at DATETIME,
  delivered_at DATETIME,
  failure_reason TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(assignments).Error)
	return db
}

func newDeliveryService(t *testing.T) (Service, Repository, *gorm.DB) {
	t.Helper()

	db := setupDeliveryTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc, repo, db
}

func TestCreate_PendingWithoutPartner(t *testing.T) {
	svc, _, _ := newDeliveryService(t)

	assignment, err := svc.Create(context.Background(), CreateInput{
		OrderID:     uuid.New(),
		DeliveryFee: decimal.RequireFromString("30.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.DeliveryStatusPending, assignment.Status)
	assert.Contains(t, assignment.DeliveryNumber, "DL-")
	assert.False(t, assignment.IsCOD)
}

func TestCreate_AssignedWithPartnerAndCOD(t *testing.T) {
	svc, _, _ := newDeliveryService(t)

	partnerID := uuid.New()
	assignment, err := svc.Create(context.Background(), CreateInput{
		OrderID:     uuid.New(),
		PartnerID:   &partnerID,
		DeliveryFee: decimal.RequireFromString("25.00"),
		IsCOD:       true,
		CODAmount:   decimal.RequireFromString("400.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.DeliveryStatusAssigned, assignment.Status)
	assert.True(t, assignment.IsCOD)
	assert.True(t, assignment.CODAmount.Equal(decimal.RequireFromString("400.00")))
}

func TestCreate_RejectsDuplicateOrder(t *testing.T) {
	svc, _, _ := newDeliveryService(t)
	ctx := context.Background()

	orderID := uuid.New()
	_, err := svc.Create(ctx, CreateInput{OrderID: orderID, DeliveryFee: decimal.RequireFromString("10.00")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{OrderID: orderID, DeliveryFee: decimal.RequireFromString("10.00")})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestCreate_CODNeedsAmount(t *testing.T) {
	svc, _, _ := newDeliveryService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		OrderID:     uuid.New(),
		DeliveryFee: decimal.RequireFromString("10.00"),
		IsCOD:       true,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestTransitionStatus_StaleState(t *testing.T) {
	svc, repo, _ := newDeliveryService(t)
	ctx := context.Background()

	assignment, err := svc.Create(ctx, CreateInput{OrderID: uuid.New(), DeliveryFee: decimal.RequireFromString("15.00")})
	require.NoError(t, err)

	partnerID := uuid.New()
	assignment.PartnerID = &partnerID
	assignment.Status = enums.DeliveryStatusAssigned
	ok, err := repo.TransitionStatus(ctx, assignment, enums.DeliveryStatusPending)
	require.NoError(t, err)
	assert.True(t, ok)

	assignment.Status = enums.DeliveryStatusAccepted
	ok, err = repo.TransitionStatus(ctx, assignment, enums.DeliveryStatusPending)
	require.NoError(t, err)
	assert.False(t, ok)

	fresh, err := repo.FindByID(ctx, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.DeliveryStatusAssigned, fresh.Status)
}
