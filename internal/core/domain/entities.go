package domain

// Role names. The set is fixed and ensured at startup.
const (
	RoleAdministrator = "Administrator"
	RoleCustomer      = "Customer"
)

// KnownRoles lists every role the seeder ensures exists.
var KnownRoles = []string{RoleAdministrator, RoleCustomer}

// Identity is a verified user as seen by the token issuer.
type Identity struct {
	ID       uint
	Username string
	Email    string
}

// Principal is the caller resolved from a validated access token.
type Principal struct {
	UserID  uint
	Subject string
	TokenID string
	Roles   []string
}

// HasRole reports whether the principal carries the named role.
func (p *Principal) HasRole(name string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}
