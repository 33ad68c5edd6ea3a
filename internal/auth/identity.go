package auth

// Role is the capability tag carried by every authenticated identity.
// Dispatch happens on this tag, never on raw role ids.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the known capability tags.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Identity is the authenticated caller as seen by the domain services.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// IsAdmin reports whether the identity carries administrator capability.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
