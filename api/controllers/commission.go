package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/api/responses"
	"github.com/agrisetu/agrisetu-backend/api/validators"
	"github.com/agrisetu/agrisetu-backend/internal/commission"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
)

type policyResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Rate        string    `json:"rate"`
	Active      bool      `json:"active"`
	Description *string   `json:"description,omitempty"`
}

func newPolicyResponse(policy models.CommissionPolicy) policyResponse {
	return policyResponse{
		ID:          policy.ID,
		Category:    string(policy.Category),
		Rate:        policy.Rate.StringFixed(2),
		Active:      policy.Active,
		Description: policy.Description,
	}
}

// ListCommissionPolicies returns every configured rate row.
func ListCommissionPolicies(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		policies, err := svc.ListPolicies(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]policyResponse, 0, len(policies))
		for _, policy := range policies {
			out = append(out, newPolicyResponse(policy))
		}
		responses.WriteSuccess(w, map[string]any{
			"policies":     out,
			"default_rate": commission.DefaultRate.StringFixed(2),
		})
	}
}

type updatePolicyRequest struct {
	Rate        string    `json:"rate" validate:"required"`
	Active      *bool     `json:"active,omitempty"`
	Description *string   `json:"description,omitempty"`
	ActorID     uuid.UUID `json:"actor_id" validate:"required"`
}

// UpdateCommissionPolicy upserts the rate for the category in the path.
func UpdateCommissionPolicy(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		category, err := enums.ParseCommissionCategory(routeParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid commission category"))
			return
		}

		var payload updatePolicyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rate, err := decimal.NewFromString(payload.Rate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "rate must be a decimal string"))
			return
		}

		policy, err := svc.UpdatePolicy(r.Context(), commission.UpdatePolicyInput{
			Category:    category,
			Rate:        rate,
			Active:      payload.Active,
			Description: sanitizeFreeText(payload.Description),
			ActorID:     payload.ActorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPolicyResponse(*policy))
	}
}

type sellerRateRequest struct {
	// Rate nil clears the override so the seller falls back to the policy rate.
	Rate *string `json:"rate"`
}

// SetSellerCommissionRate sets or clears a per-seller override.
func SetSellerCommissionRate(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		sellerID, err := uuidParam(r, "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sellerRateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var rate *decimal.Decimal
		if payload.Rate != nil {
			parsed, parseErr := decimal.NewFromString(*payload.Rate)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "rate must be a decimal string"))
				return
			}
			rate = &parsed
		}

		if err := svc.SetSellerRate(r.Context(), sellerID, rate); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"seller_id": sellerID, "override_set": rate != nil})
	}
}
