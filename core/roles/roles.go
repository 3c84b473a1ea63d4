// Package roles defines the system's user roles (spec §3.1 User.role).
package roles

// System role constants, matching User.role ∈ {USER, OPERATOR, ADMIN} (spec §3.1).
const (
	UserRole     = "USER"
	OperatorRole = "OPERATOR"
	AdminRole    = "ADMIN"
)

// ranks orders roles by privilege for the operator-token middleware's role gate.
var ranks = map[string]int{
	UserRole:     0,
	OperatorRole: 1,
	AdminRole:    2,
}

// Satisfies reports whether a caller holding `held` meets the `required` role floor.
func Satisfies(held, required string) bool {
	h, ok := ranks[held]
	if !ok {
		return false
	}
	r, ok := ranks[required]
	if !ok {
		return false
	}
	return h >= r
}
