package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu-backend/api/validators"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

const maxFreeTextLen = 500

func routeParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s", name)).
			WithDetails(map[string]any{"field": name, "value": raw})
	}
	return id, nil
}

// sanitizeFreeText trims and bounds caller-supplied notes and descriptions.
// Empty results collapse to nil so the column stays null.
func sanitizeFreeText(value *string) *string {
	if value == nil {
		return nil
	}
	clean := validators.SanitizeString(*value, maxFreeTextLen)
	if clean == "" {
		return nil
	}
	return &clean
}

type entryResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Direction     string    `json:"direction"`
	Amount        string    `json:"amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	Category      string    `json:"category"`
	ReferenceType *string   `json:"reference_type,omitempty"`
	ReferenceID   *string   `json:"reference_id,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     string    `json:"created_at"`
}

func newEntryResponse(entry models.WalletTransaction) entryResponse {
	resp := entryResponse{
		ID:            entry.ID,
		UserID:        entry.UserID,
		Direction:     string(entry.Direction),
		Amount:        entry.Amount.StringFixed(2),
		BalanceBefore: entry.BalanceBefore.StringFixed(2),
		BalanceAfter:  entry.BalanceAfter.StringFixed(2),
		Category:      string(entry.Category),
		Description:   entry.Description,
		CreatedAt:     entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if entry.ReferenceType != nil {
		refType := string(*entry.ReferenceType)
		resp.ReferenceType = &refType
	}
	if entry.ReferenceID != nil {
		refID := entry.ReferenceID.String()
		resp.ReferenceID = &refID
	}
	return resp
}

func newEntryResponses(entries []models.WalletTransaction) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, newEntryResponse(entry))
	}
	return out
}
