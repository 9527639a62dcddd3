package models

// Session is the client-held authenticated identity: an opaque access
// token plus the user snapshot captured at login. Token and User are
// always both set or both empty; the session cell is replaced wholesale
// on every transition, never field-by-field.
type Session struct {
	Token string
	User  *User
}

// IsAuthenticated reports whether the session carries credentials.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}
