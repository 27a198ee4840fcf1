package domain

// Viewer is the resolved identity for one request. It is passed explicitly into
// every usecase operation and is never read from ambient state.
type Viewer struct {
	Authenticated bool
	AccountID     string
	Role          Role
}

// Guest is the viewer used when no usable credential was presented.
func Guest() Viewer {
	return Viewer{Role: RoleGuest}
}

// NewViewer builds an authenticated viewer. An empty account ID or unknown role yields a guest.
func NewViewer(accountID string, role Role) Viewer {
	if accountID == "" || !role.IsValid() || role == RoleGuest {
		return Guest()
	}
	return Viewer{Authenticated: true, AccountID: accountID, Role: role}
}

// RevealSensitive reports whether contact and owner details may be shown.
// Any authenticated viewer qualifies; ownership is not required.
func (v Viewer) RevealSensitive() bool {
	return v.Authenticated
}
