package domain

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	DenyForbidden
	DenyUnauthenticated
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyForbidden:
		return "forbidden"
	case DenyUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Err maps the decision onto the error taxonomy. Allow yields nil.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return ErrUnauthenticated
	default:
		return ErrForbidden
	}
}

func IsOwner(l *Listing, v Viewer) bool {
	return v.Authenticated && l != nil && v.AccountID == l.OwnerID
}

// HasRole is an exact match. ADMIN does not satisfy USER.
func HasRole(v Viewer, r Role) bool {
	return v.Authenticated && v.Role == r
}

// AuthorizeRole gates an operation on a single role.
func AuthorizeRole(v Viewer, r Role) Decision {
	if !v.Authenticated {
		return DenyUnauthenticated
	}
	if !HasRole(v, r) {
		return DenyForbidden
	}
	return Allow
}

// AuthorizeOwner gates owner-only listing mutations: a USER who owns the listing.
func AuthorizeOwner(l *Listing, v Viewer) Decision {
	if d := AuthorizeRole(v, RoleUser); d != Allow {
		return d
	}
	if !IsOwner(l, v) {
		return DenyForbidden
	}
	return Allow
}

// AuthorizeSelf gates self-service account operations.
func AuthorizeSelf(v Viewer) Decision {
	if !v.Authenticated || v.AccountID == "" {
		return DenyUnauthenticated
	}
	return Allow
}
