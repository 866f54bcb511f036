package domain

// Role is a user's platform-wide permission level, distinct from per-channel
// ownership. The numeric values are part of the wire contract.
type Role int

const (
	RoleOwner  Role = 1
	RoleMember Role = 2
)

// Valid reports whether r is a recognised role value.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleMember
}

// User is an identity record. Identities are assigned sequentially starting
// at 1 and are never deleted; the first registered user is the global Owner.
//
// Password is stored and compared verbatim. This mirrors the documented
// behaviour of the system and is not to be "hardened" here.
type User struct {
	ID        int
	Email     string
	NameFirst string
	NameLast  string
	Handle    string
	Password  string
	Role      Role
}
