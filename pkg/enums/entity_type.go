package enums

import "fmt"

// EntityType identifies which transaction-bearing entity a settlement or
// ledger reference points at.
type EntityType string

const (
	EntityTypeOrder              EntityType = "order"
	EntityTypeLabourBooking      EntityType = "labour_booking"
	EntityTypeTransportBooking   EntityType = "transport_booking"
	EntityTypeDeliveryAssignment EntityType = "delivery_assignment"
)

var validEntityTypes = []EntityType{
	EntityTypeOrder,
	EntityTypeLabourBooking,
	EntityTypeTransportBooking,
	EntityTypeDeliveryAssignment,
}

// IsValid reports whether the value matches a known entity type.
func (t EntityType) IsValid() bool {
	for _, candidate := range validEntityTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseEntityType converts raw input into EntityType.
func ParseEntityType(value string) (EntityType, error) {
	for _, candidate := range validEntityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity type %q", value)
}
