package handlers

import "context"

// Role values carried by a session.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// Identity is the authenticated caller. Staff sessions are scoped to
// an explicit store list; admin sessions see everything.
type Identity struct {
	UserID   string   `json:"userId"`
	Role     string   `json:"role"`
	StoreIDs []string `json:"storeIds"`
}

// CanAccessStore reports whether the identity may read one store.
func (id Identity) CanAccessStore(storeID string) bool {
	if id.Role == RoleAdmin {
		return true
	}
	for _, sid := range id.StoreIDs {
		if sid == storeID {
			return true
		}
	}
	return false
}

type identityKey struct{}

// WithIdentity attaches the caller to the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the caller; ok is false for anonymous requests.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
