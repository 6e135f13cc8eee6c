package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ActorRole identifies who is requesting a status transition. Every edge in
// the transition table is owned by exactly one role; a request from any other
// role is rejected.
type ActorRole int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown ActorRole = iota

	// RoleRestaurant is the restaurant console operator.
	RoleRestaurant

	// RoleDriver is the assigned delivery driver.
	RoleDriver

	// RoleSystem is the platform itself (e.g. automated cancellation).
	RoleSystem
)

func getRoleStrings() map[ActorRole]string {
	return map[ActorRole]string{
		RoleUnknown:    "Unknown",
		RoleRestaurant: "Restaurant",
		RoleDriver:     "Driver",
		RoleSystem:     "System",
	}
}

func getValidRoleStrings() map[ActorRole]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[ActorRole]string{
		RoleRestaurant: "Restaurant",
		RoleDriver:     "Driver",
		RoleSystem:     "System",
	}
}

// RoleFromString parses the wire representation of an actor role.
func RoleFromString(s string) (ActorRole, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("actor role",
		fmt.Errorf("%q is not a known actor role", s))
}

// Validate checks if the ActorRole is one of the three known roles.
func (r ActorRole) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("actor role",
			fmt.Errorf("%d is not a valid actor role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements fmt.Stringer and is safe on any value.
func (r ActorRole) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
