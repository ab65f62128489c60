package shared

import "github.com/google/uuid"

// Viewer is the account a request runs on behalf of. The zero value is anonymous.
type Viewer struct {
	AccountID uuid.UUID
	Username  string
}

// Authenticated reports whether the request carried a valid token
func (v Viewer) Authenticated() bool {
	return v.AccountID != uuid.Nil
}

// Anonymous is the viewer of unauthenticated requests
var Anonymous = Viewer{}
