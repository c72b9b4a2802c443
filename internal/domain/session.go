package domain

import "time"

// Session is the persisted credential: a bearer access token plus the
// identifier the user logged in with. An empty token means unauthenticated.
type Session struct {
	Token      string
	Identifier string
	ObtainedAt time.Time
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
