// Package state models the SSS stablecoin control-plane entities: the closed
// role and preset enumerations, the per-mint config, role grants, and
// blacklist entries, each decoded from the Anchor account layouts defined in:
//   - sss-programs/sss-core/src/state/config.rs (StablecoinConfig)
//   - sss-programs/sss-core/src/state/role.rs (RoleAccount, Role)
//   - sss-programs/sss-transfer-hook/src/state/blacklist.rs (BlacklistEntry)
//
// External string and numeric identifiers cross into the typed enums at a
// single parse boundary (ParseRole, ParsePreset, roleFromCode,
// presetFromCode); unrecognized values are rejected before any derivation or
// network call.
package state

import "fmt"

// Role is a privilege grant in the closed role set.
//
// The numeric encoding is load-bearing: the role code is the final seed of
// the RoleAccount PDA derivation, so renumbering would re-address every grant
// on chain.
type Role uint8

const (
	RoleAdmin       Role = 0 // Grants and revokes other roles, updates config
	RoleMinter      Role = 1 // Mints new supply, subject to cap and quota
	RoleFreezer     Role = 2 // Freezes and thaws individual token accounts
	RolePauser      Role = 3 // Pauses and unpauses all gated operations
	RoleBurner      Role = 4 // Burns supply
	RoleBlacklister Role = 5 // Manages transfer-hook blacklist entries
	RoleSeizer      Role = 6 // Clawback transfers, exempt from the pause gate
)

// roleNames maps each role to its external string identifier.
var roleNames = map[Role]string{
	RoleAdmin:       "admin",
	RoleMinter:      "minter",
	RoleFreezer:     "freezer",
	RolePauser:      "pauser",
	RoleBurner:      "burner",
	RoleBlacklister: "blacklister",
	RoleSeizer:      "seizer",
}

// Roles returns the closed role set in numeric order.
func Roles() []Role {
	return []Role{
		RoleAdmin, RoleMinter, RoleFreezer, RolePauser,
		RoleBurner, RoleBlacklister, RoleSeizer,
	}
}

// String returns the external name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Code returns the on-chain numeric encoding used in PDA seeds and
// instruction arguments.
func (r Role) Code() uint8 { return uint8(r) }

// ParseRole converts an external role name into the enum. Unknown names are a
// ValidationError; no derivation or network call may precede this check.
func ParseRole(name string) (Role, error) {
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return 0, &ValidationError{
		Code:    ErrUnknownRole,
		Message: fmt.Sprintf("unknown role %q", name),
	}
}

// roleFromCode validates a role byte read from account data.
func roleFromCode(code uint8) (Role, error) {
	if code > uint8(RoleSeizer) {
		return 0, &CorruptStateError{
			Code:    ErrUnknownRoleCode,
			Message: fmt.Sprintf("stored role code %d outside the closed set", code),
		}
	}
	return Role(code), nil
}
