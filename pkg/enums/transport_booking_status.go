package enums

import "fmt"

// TransportBookingStatus is the lifecycle state of a transport booking.
type TransportBookingStatus string

const (
	TransportBookingStatusPending    TransportBookingStatus = "pending"
	TransportBookingStatusAssigned   TransportBookingStatus = "assigned"
	TransportBookingStatusAccepted   TransportBookingStatus = "accepted"
	TransportBookingStatusInProgress TransportBookingStatus = "in_progress"
	TransportBookingStatusCompleted  TransportBookingStatus = "completed"
	TransportBookingStatusCancelled  TransportBookingStatus = "cancelled"
)

var validTransportBookingStatuses = []TransportBookingStatus{
	TransportBookingStatusPending,
	TransportBookingStatusAssigned,
	TransportBookingStatusAccepted,
	TransportBookingStatusInProgress,
	TransportBookingStatusCompleted,
	TransportBookingStatusCancelled,
}

// IsValid reports whether the value matches a known transport booking status.
func (s TransportBookingStatus) IsValid() bool {
	for _, candidate := range validTransportBookingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTransportBookingStatus converts raw input into TransportBookingStatus.
func ParseTransportBookingStatus(value string) (TransportBookingStatus, error) {
	for _, candidate := range validTransportBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transport booking status %q", value)
}
