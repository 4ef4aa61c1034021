package enums

import "fmt"

// CommissionCategory keys the platform commission policies.
type CommissionCategory string

const (
	CommissionCategorySellerProduct    CommissionCategory = "seller_product"
	CommissionCategoryLabourBooking    CommissionCategory = "labour_booking"
	CommissionCategoryTransportBooking CommissionCategory = "transport_booking"
)

var validCommissionCategories = []CommissionCategory{
	CommissionCategorySellerProduct,
	CommissionCategoryLabourBooking,
	CommissionCategoryTransportBooking,
}

// IsValid reports whether the value matches a known commission category.
func (c CommissionCategory) IsValid() bool {
	for _, candidate := range validCommissionCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCommissionCategory converts raw input into CommissionCategory.
func ParseCommissionCategory(value string) (CommissionCategory, error) {
	for _, candidate := range validCommissionCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid commission category %q", value)
}
