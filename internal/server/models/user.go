// Package models defines the server-side persistence models.
package models

import "time"

// User is a marketplace account. PasswordHash is a bcrypt hash; the plain
// password never leaves the signup/login handlers.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	CreatedAt    time.Time
}
