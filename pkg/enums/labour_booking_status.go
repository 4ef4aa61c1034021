package enums

import "fmt"

// LabourBookingStatus is the lifecycle state of a labour booking.
type LabourBookingStatus string

const (
	LabourBookingStatusPending     LabourBookingStatus = "pending"
	LabourBookingStatusAssigned    LabourBookingStatus = "assigned"
	LabourBookingStatusAccepted    LabourBookingStatus = "accepted"
	LabourBookingStatusWorkStarted LabourBookingStatus = "work_started"
	LabourBookingStatusCompleted   LabourBookingStatus = "completed"
	LabourBookingStatusCancelled   LabourBookingStatus = "cancelled"
)

var validLabourBookingStatuses = []LabourBookingStatus{
	LabourBookingStatusPending,
	LabourBookingStatusAssigned,
	LabourBookingStatusAccepted,
	LabourBookingStatusWorkStarted,
	LabourBookingStatusCompleted,
	LabourBookingStatusCancelled,
}

// IsValid reports whether the value matches a known labour booking status.
func (s LabourBookingStatus) IsValid() bool {
	for _, candidate := range validLabourBookingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLabourBookingStatus converts raw input into LabourBookingStatus.
func ParseLabourBookingStatus(value string) (LabourBookingStatus, error) {
	for _, candidate := range validLabourBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid labour booking status %q", value)
}
