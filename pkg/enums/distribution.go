package enums

import "fmt"

// DistributionStatus represents whether a distribution still accepts picks.
type DistributionStatus string

const (
	DistributionStatusActive DistributionStatus = "active"
	DistributionStatusClosed DistributionStatus = "closed"
)

var validDistributionStatuses = []DistributionStatus{
	DistributionStatusActive,
	DistributionStatusClosed,
}

// String implements fmt.Stringer.
func (s DistributionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DistributionStatus.
func (s DistributionStatus) IsValid() bool {
	for _, candidate := range validDistributionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDistributionStatus converts raw input into a DistributionStatus.
func ParseDistributionStatus(value string) (DistributionStatus, error) {
	for _, candidate := range validDistributionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid distribution status %q", value)
}
