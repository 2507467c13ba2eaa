package domain

import "time"

// Session is the console-held record of the current authenticated identity
// and its bearer credential for the CRM API.
//
// Invariant: IsAuthenticated is true exactly when both Token and User are
// set. Nothing mutates a Session except the session manager's SetAuth,
// UpdateUser and Logout operations; Logout clears all three fields in a
// single persisted write.
type Session struct {
	ID              string `json:"id"`
	Token           string `json:"token"`
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	// RefreshedAt records when the profile was last reconciled with the
	// CRM API's view of the user.
	RefreshedAt time.Time `json:"refreshedAt"`
}
