package enums

import "fmt"

// LedgerCategory classifies every wallet journal entry.
type LedgerCategory string

const (
	LedgerCategoryOrderPayment        LedgerCategory = "order_payment"
	LedgerCategoryOrderRefund         LedgerCategory = "order_refund"
	LedgerCategorySellerEarning       LedgerCategory = "seller_earning"
	LedgerCategoryCommissionDeduction LedgerCategory = "commission_deduction"
	LedgerCategoryLabourPayment       LedgerCategory = "labour_payment"
	LedgerCategoryLabourRefund        LedgerCategory = "labour_refund"
	LedgerCategoryLabourEarning       LedgerCategory = "labour_earning"
	LedgerCategoryTransportPayment    LedgerCategory = "transport_payment"
	LedgerCategoryTransportRefund     LedgerCategory = "transport_refund"
	LedgerCategoryTransportEarning    LedgerCategory = "transport_earning"
	LedgerCategoryDeliveryEarning     LedgerCategory = "delivery_earning"
	LedgerCategoryCODSettlement       LedgerCategory = "cod_settlement"
	LedgerCategoryWithdrawal          LedgerCategory = "withdrawal"
	LedgerCategoryAdminAdjustment     LedgerCategory = "admin_adjustment"
	LedgerCategoryPenalty             LedgerCategory = "penalty"
	LedgerCategoryBonus               LedgerCategory = "bonus"
	LedgerCategoryIncentive           LedgerCategory = "incentive"
	LedgerCategorySettlementReversal  LedgerCategory = "settlement_reversal"
)

var validLedgerCategories = []LedgerCategory{
	LedgerCategoryOrderPayment,
	LedgerCategoryOrderRefund,
	LedgerCategorySellerEarning,
	LedgerCategoryCommissionDeduction,
	LedgerCategoryLabourPayment,
	LedgerCategoryLabourRefund,
	LedgerCategoryLabourEarning,
	LedgerCategoryTransportPayment,
	LedgerCategoryTransportRefund,
	LedgerCategoryTransportEarning,
	LedgerCategoryDeliveryEarning,
	LedgerCategoryCODSettlement,
	LedgerCategoryWithdrawal,
	LedgerCategoryAdminAdjustment,
	LedgerCategoryPenalty,
	LedgerCategoryBonus,
	LedgerCategoryIncentive,
	LedgerCategorySettlementReversal,
}

// IsValid reports whether the value matches the canonical category enum.
func (c LedgerCategory) IsValid() bool {
	for _, candidate := range validLedgerCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseLedgerCategory converts raw input into LedgerCategory.
func ParseLedgerCategory(value string) (LedgerCategory, error) {
	for _, candidate := range validLedgerCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ledger category %q", value)
}
