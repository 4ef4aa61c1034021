package commission

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
)

// Repository manages persistence for commission policies and seller overrides.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetPolicyByCategory(ctx context.Context, category enums.CommissionCategory) (*models.CommissionPolicy, error)
	ListPolicies(ctx context.Context) ([]models.CommissionPolicy, error)
	UpsertPolicy(ctx context.Context, policy *models.CommissionPolicy) error
	GetSellerProfile(ctx context.Context, sellerUserID uuid.UUID) (*models.SellerProfile, error)
	SaveSellerRate(ctx context.Context, sellerUserID uuid.UUID, rate *decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a commission repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetPolicyByCategory(ctx context.Context, category enums.CommissionCategory) (*models.CommissionPolicy, error) {
	var policy models.CommissionPolicy
	err := r.db.WithContext(ctx).
		Where("category = ? AND active = ?", category, true).
		First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) ListPolicies(ctx context.Context) ([]models.CommissionPolicy, error) {
	var policies []models.CommissionPolicy
	err := r.db.WithContext(ctx).
		Order("category ASC").
		Find(&policies).Error
	if err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *repository) UpsertPolicy(ctx context.Context, policy *models.CommissionPolicy) error {
	var existing models.CommissionPolicy
	err := r.db.WithContext(ctx).
		Where("category = ?", policy.Category).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(policy).Error
	}
	if err != nil {
		return err
	}
	policy.ID = existing.ID
	policy.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).
		Model(&models.CommissionPolicy{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"rate":        policy.Rate,
			"active":      policy.Active,
			"description": policy.Description,
			"updated_by":  policy.UpdatedBy,
		}).Error
}

func (r *repository) GetSellerProfile(ctx context.Context, sellerUserID uuid.UUID) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", sellerUserID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) SaveSellerRate(ctx context.Context, sellerUserID uuid.UUID, rate *decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.SellerProfile{}).
		Where("user_id = ?", sellerUserID).
		Update("commission_rate", rate)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
