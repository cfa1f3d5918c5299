// Package models defines the client-side data shapes exchanged with the
// Rentafind backend and persisted between runs.
package models

import "time"

// UserSummary is the immutable snapshot of the signed-in user taken from the
// auth response. It is replaced wholesale on profile updates, never merged.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the durable authentication state of the client.
//
// Invariant: a non-empty Token means the client is authenticated. User may be
// absent even when Token is present (e.g. the stored user record was corrupt);
// such a session is still authenticated and the profile can be re-fetched.
type Session struct {
	Token string
	User  *UserSummary
}

// IsAuthenticated reports whether the session carries a token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Credentials are transient login inputs. Never persisted.
type Credentials struct {
	Username string
	Password string
}

// SignupRequest are transient signup inputs. Never persisted.
type SignupRequest struct {
	Username string
	Email    string
	Password string
}

// House is a rental listing as returned by the backend. The client never
// mutates an existing listing's fields; it only creates or deletes listings.
type House struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	PhoneNumber string    `json:"phoneNumber"`
	District    string    `json:"district"`
	City        string    `json:"city"`
	CreatedAt   time.Time `json:"createdAt"`
	HasImage    bool      `json:"hasImage"`
}

// Profile is the full account view returned by GET /user/profile.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}
