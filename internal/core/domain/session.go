package domain

// Session is the identity stored for one browser session.
// Token is opaque; only its presence matters to the portal.
type Session struct {
	Token string
	User  *User
}

// Anonymous is the session reported when nothing (or nothing usable) is stored.
var Anonymous = Session{}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Role returns the user's role. It is empty for anonymous sessions.
func (s Session) Role() Role {
	if !s.Authenticated() || s.User == nil {
		return ""
	}
	return s.User.Role
}

// IsAdmin reports whether the session belongs to an authenticated admin.
func (s Session) IsAdmin() bool {
	return s.Role() == RoleAdmin
}
