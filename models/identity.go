package models

// Identity is the signed-in user resolved from the auth provider's session.
// The zero value is the anonymous identity.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Identity{}

// Authenticated reports whether a user is signed in.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// DisplayName returns the name captured on new submissions.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return "Anonymous"
}
