package lifecycle

import (
	"fmt"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

// Table is a data-driven transition table for one entity type. Statuses with
// no outgoing transitions are terminal; any request from them fails.
type Table struct {
	Entity enums.EntityType
	// Transitions maps a status to its allowed next statuses.
	Transitions map[string][]string
	// Triggers marks target statuses that must run settlement exactly once.
	Triggers map[string]bool
	// Refunds marks target statuses that refund the payer when the payment
	// already completed (cancellations and returns).
	Refunds map[string]bool
}

// Outcome tells the orchestrator what a legal transition demands.
type Outcome struct {
	From                 string
	To                   string
	SettlementTriggering bool
	Refunding            bool
}

// Validate checks that to is reachable from from.
func (t *Table) Validate(from, to string) error {
	allowed, ok := t.Transitions[from]
	if !ok {
		return apperrors.New(apperrors.CodeStateConflict,
			fmt.Sprintf("%s status %q is terminal", t.Entity, from)).
			WithDetails(map[string]any{"from": from, "to": to})
	}
	for _, candidate := range allowed {
		if candidate == to {
			return nil
		}
	}
	return apperrors.New(apperrors.CodeStateConflict,
		fmt.Sprintf("cannot transition %s from %q to %q", t.Entity, from, to)).
		WithDetails(map[string]any{"from": from, "to": to, "allowed": allowed})
}

// Apply validates the transition and returns its settlement markers.
func (t *Table) Apply(from, to string) (Outcome, error) {
	if err := t.Validate(from, to); err != nil {
		return Outcome{}, err
	}
	return Outcome{
		From:                 from,
		To:                   to,
		SettlementTriggering: t.Triggers[to],
		Refunding:            t.Refunds[to],
	}, nil
}

// IsTerminal reports whether the status has no outgoing transitions.
func (t *Table) IsTerminal(status string) bool {
	next, ok := t.Transitions[status]
	return !ok || len(next) == 0
}

// Knows reports whether the status appears anywhere in the table.
func (t *Table) Knows(status string) bool {
	if _, ok := t.Transitions[status]; ok {
		return true
	}
	for _, targets := range t.Transitions {
		for _, candidate := range targets {
			if candidate == status {
				return true
			}
		}
	}
	return false
}

// TableFor returns the transition table for the given entity type.
func TableFor(entity enums.EntityType) (*Table, error) {
	table, ok := tables[entity]
	if !ok {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown entity type %q", entity))
	}
	return table, nil
}
