package commands

import (
	"freightmatch/internal/pkg/errs"
)

// Role identifies the kind of actor issuing a lifecycle command.
// Authorization rules in UpdateJobStatusCommandHandler depend on it.
type Role int

const (
	// RoleUnknown is the zero value and never authorizes anything.
	RoleUnknown Role = iota
	// RoleCarrier is a driver who claims and hauls jobs.
	RoleCarrier
	// RoleDispatcher is back-office staff confirming assignments and payouts.
	RoleDispatcher
	// RoleAdmin has every dispatcher permission.
	RoleAdmin
)

var roleStrings = map[Role]string{
	RoleUnknown:    "unknown",
	RoleCarrier:    "carrier",
	RoleDispatcher: "dispatcher",
	RoleAdmin:      "admin",
}

// ParseRole converts a string token into a Role.
// Returns *errs.ValueIsInvalidError for unrecognized tokens.
func ParseRole(name string) (Role, error) {
	for role, token := range roleStrings {
		if role != RoleUnknown && token == name {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidError("role")
}

// Validate returns an error when the role is not one of the known actor kinds.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidError("role")
	}
	if _, ok := roleStrings[r]; !ok {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}

// String returns the lowercase token for the role.
func (r Role) String() string {
	if token, ok := roleStrings[r]; ok {
		return token
	}
	return "unknown"
}

// IsBackOffice reports whether the role carries dispatcher-level permissions.
func (r Role) IsBackOffice() bool {
	return r == RoleDispatcher || r == RoleAdmin
}
