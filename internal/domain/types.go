package domain

// ID is used across domain entities.
type ID int64

// Role values recognised by the auth layer.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal carries the authenticated user for engine operations.
type Principal struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the principal may act on records it does not own.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Owns reports whether the principal owns the given user id or is an admin.
func (p Principal) Owns(userID ID) bool {
	return p.UserID == userID || p.IsAdmin()
}
