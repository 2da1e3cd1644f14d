package enums

import "fmt"

// FarmerStatus mirrors the status field on farmer records.
type FarmerStatus string

const (
	FarmerStatusActive   FarmerStatus = "active"
	FarmerStatusInactive FarmerStatus = "inactive"
)

var validFarmerStatuses = []FarmerStatus{
	FarmerStatusActive,
	FarmerStatusInactive,
}

// String implements fmt.Stringer.
func (f FarmerStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FarmerStatus.
func (f FarmerStatus) IsValid() bool {
	for _, candidate := range validFarmerStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFarmerStatus converts raw input into a FarmerStatus.
func ParseFarmerStatus(value string) (FarmerStatus, error) {
	for _, candidate := range validFarmerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid farmer status %q", value)
}
