package commission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
)

// DefaultRate applies when no policy row exists for a category. Missing
// policies are a configuration gap, not an error, so settlements keep
// flowing at this rate.
var DefaultRate = decimal.NewFromInt(10)

// Split is the outcome of applying a commission rate to a gross amount.
// Net and Commission always sum back to the gross exactly.
type Split struct {
	Gross      decimal.Decimal `json:"gross"`
	Rate       decimal.Decimal `json:"rate"`
	Commission decimal.Decimal `json:"commission"`
	Net        decimal.Decimal `json:"net"`
}

// UpdatePolicyInput carries an admin rate change for one category.
type UpdatePolicyInput struct {
	Category    enums.CommissionCategory
	Rate        decimal.Decimal
	Active      *bool
	Description *string
	ActorID     uuid.UUID
}

// Service resolves commission rates and computes settlement splits.
type Service interface {
	// RateFor resolves the percentage rate for a category. A non-nil seller
	// override wins for seller_product; otherwise the active policy row, and
	// finally DefaultRate.
	RateFor(ctx context.Context, category enums.CommissionCategory, sellerUserID *uuid.UUID) (decimal.Decimal, error)
	RateForTx(ctx context.Context, tx *gorm.DB, category enums.CommissionCategory, sellerUserID *uuid.UUID) (decimal.Decimal, error)
	Split(gross, rate decimal.Decimal) Split
	ListPolicies(ctx context.Context) ([]models.CommissionPolicy, error)
	UpdatePolicy(ctx context.Context, input UpdatePolicyInput) (*models.CommissionPolicy, error)
	SetSellerRate(ctx context.Context, sellerUserID uuid.UUID, rate *decimal.Decimal) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the commission service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) RateFor(ctx context.Context, category enums.CommissionCategory, sellerUserID *uuid.UUID) (decimal.Decimal, error) {
	return s.rateFor(ctx, s.repo, category, sellerUserID)
}

func (s *service) RateForTx(ctx context.Context, tx *gorm.DB, category enums.CommissionCategory, sellerUserID *uuid.UUID) (decimal.Decimal, error) {
	return s.rateFor(ctx, s.repo.WithTx(tx), category, sellerUserID)
}

func (s *service) rateFor(ctx context.Context, repo Repository, category enums.CommissionCategory, sellerUserID *uuid.UUID) (decimal.Decimal, error) {
	if !category.IsValid() {
		return decimal.Zero, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid commission category %q", category))
	}

	if category == enums.CommissionCategorySellerProduct && sellerUserID != nil {
		profile, err := repo.GetSellerProfile(ctx, *sellerUserID)
		if err != nil {
			return decimal.Zero, apperrors.Wrap(apperrors.CodeInternal, err, "loading seller profile")
		}
		if profile != nil && profile.CommissionRate != nil {
			return *profile.CommissionRate, nil
		}
	}

	policy, err := repo.GetPolicyByCategory(ctx, category)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.CodeInternal, err, "loading commission policy")
	}
	if policy == nil {
		if s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{"category": category})
			s.logg.Warn(logCtx, "no commission policy configured, using default rate")
		}
		return DefaultRate, nil
	}
	return policy.Rate, nil
}

// Split computes commission = gross * rate / 100 rounded to two decimal
// places, half up. Net is derived by subtraction so nothing is ever lost to
// rounding.
func (s *service) Split(gross, rate decimal.Decimal) Split {
	commission := gross.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	return Split{
		Gross:      gross,
		Rate:       rate,
		Commission: commission,
		Net:        gross.Sub(commission),
	}
}

func (s *service) ListPolicies(ctx context.Context) ([]models.CommissionPolicy, error) {
	policies, err := s.repo.ListPolicies(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing commission policies")
	}
	return policies, nil
}

func (s *service) UpdatePolicy(ctx context.Context, input UpdatePolicyInput) (*models.CommissionPolicy, error) {
	if !input.Category.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid commission category %q", input.Category))
	}
	if err := validateRate(input.Rate); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	actorID := input.ActorID
	policy := &models.CommissionPolicy{
		ID:          uuid.New(),
		Category:    input.Category,
		Rate:        input.Rate,
		Active:      active,
		Description: input.Description,
	}
	if actorID != uuid.Nil {
		policy.UpdatedBy = &actorID
	}
	if err := s.repo.UpsertPolicy(ctx, policy); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "saving commission policy")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"category": input.Category,
			"rate":     input.Rate.StringFixed(2),
		})
		s.logg.Info(logCtx, "commission policy updated")
	}
	return policy, nil
}

func (s *service) SetSellerRate(ctx context.Context, sellerUserID uuid.UUID, rate *decimal.Decimal) error {
	if sellerUserID == uuid.Nil {
		return apperrors.New(apperrors.CodeValidation, "seller id is required")
	}
	if rate != nil {
		if err := validateRate(*rate); err != nil {
			return err
		}
	}
	if err := s.repo.SaveSellerRate(ctx, sellerUserID, rate); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "seller profile not found")
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "saving seller rate")
	}
	return nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return apperrors.New(apperrors.CodeValidation, "rate must be between 0 and 100")
	}
	return nil
}
