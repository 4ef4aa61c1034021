package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/pagination"
)

// Repository manages persistence for wallets and their journal.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	// GetByUserIDForUpdate locks the wallet row for the duration of the
	// enclosing transaction. Callers must run inside WithTx.
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	Create(ctx context.Context, wallet *models.Wallet) error
	SaveBalance(ctx context.Context, wallet *models.Wallet) error
	InsertTransaction(ctx context.Context, entry *models.WalletTransaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID, params ListParams) ([]models.WalletTransaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a wallet repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *repository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	query := r.db.WithContext(ctx)
	// sqlite has no row locks; its single-writer connection gives the same
	// serialization in tests.
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var wallet models.Wallet
	err := query.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *repository) Create(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r *repository) SaveBalance(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]any{
			"balance":      wallet.Balance,
			"last_updated": wallet.LastUpdated,
		}).Error
}

func (r *repository) InsertTransaction(ctx context.Context, entry *models.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListTransactions(ctx context.Context, userID uuid.UUID, params ListParams) ([]models.WalletTransaction, error) {
	query := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("user_id = ?", userID)

	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at <= ?", *params.To)
	}

	cursor, err := pagination.ParseCursor(params.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.WalletTransaction
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Pagination.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
