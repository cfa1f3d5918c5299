package models

import "time"

// House is a rental listing owned by exactly one user. Only create and
// delete are exposed; existing listings are never edited.
type House struct {
	ID          string
	OwnerID     string
	Type        string
	PhoneNumber string
	District    string
	City        string
	HasImage    bool
	CreatedAt   time.Time
}
