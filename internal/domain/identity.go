package domain

// Role is an application role. The three roles are fixed; there is no
// multi-tenancy beyond them.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleOrganizer Role = "Organizer"
	RoleGuest     Role = "Guest"
)

// ParseRole maps a string to a known Role. Unknown values fall back to Guest,
// the least-privileged role.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleOrganizer):
		return RoleOrganizer
	default:
		return RoleGuest
	}
}

// Identity is the authenticated caller, derived from the bearer token by the
// auth middleware and passed explicitly into every service operation.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated identity.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

// TokenVerifier verifies a token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
