package user

import "time"

// Profile is one author record as returned by the upstream user endpoint.
// Immutable after construction; cached by handle.
type Profile struct {
	ID        string `json:"id"`
	Created   int64  `json:"created"`
	Karma     int    `json:"karma"`
	About     string `json:"about"`
	Submitted []int  `json:"submitted"`
}

// MemberSince formats the signup time for the "member since" display,
// e.g. "February 2007". Empty when the signup time is unknown.
func (p Profile) MemberSince() string {
	if p.Created == 0 {
		return ""
	}
	return time.Unix(p.Created, 0).UTC().Format("January 2006")
}
