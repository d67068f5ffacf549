package enums

import "fmt"

// DonationStatus tracks an item through its pickup lifecycle.
type DonationStatus string

const (
	DonationStatusAvailable DonationStatus = "available"
	DonationStatusClaimed   DonationStatus = "claimed"
	DonationStatusPickedUp  DonationStatus = "picked_up"
)

var validDonationStatuses = []DonationStatus{
	DonationStatusAvailable,
	DonationStatusClaimed,
	DonationStatusPickedUp,
}

// String implements fmt.Stringer.
func (s DonationStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s DonationStatus) IsValid() bool {
	for _, candidate := range validDonationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s DonationStatus) IsTerminal() bool {
	return s == DonationStatusPickedUp
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
// Allowed: available->claimed, available->picked_up, claimed->picked_up.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	switch s {
	case DonationStatusAvailable:
		return next == DonationStatusClaimed || next == DonationStatusPickedUp
	case DonationStatusClaimed:
		return next == DonationStatusPickedUp
	default:
		return false
	}
}

// ParseDonationStatus converts a raw string into a DonationStatus.
func ParseDonationStatus(value string) (DonationStatus, error) {
	for _, candidate := range validDonationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid donation status %q", value)
}
