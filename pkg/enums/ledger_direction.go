package enums

import "fmt"

// LedgerDirection marks whether a journal entry increases or decreases a balance.
type LedgerDirection string

const (
	LedgerDirectionCredit LedgerDirection = "credit"
	LedgerDirectionDebit  LedgerDirection = "debit"
)

// IsValid reports whether the value is a known direction.
func (d LedgerDirection) IsValid() bool {
	return d == LedgerDirectionCredit || d == LedgerDirectionDebit
}

// ParseLedgerDirection converts raw input into LedgerDirection.
func ParseLedgerDirection(value string) (LedgerDirection, error) {
	switch LedgerDirection(value) {
	case LedgerDirectionCredit:
		return LedgerDirectionCredit, nil
	case LedgerDirectionDebit:
		return LedgerDirectionDebit, nil
	default:
		return "", fmt.Errorf("invalid ledger direction %q", value)
	}
}
