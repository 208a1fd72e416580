package model

import "time"

// Profile is the record-store copy of a signed-up user, keyed by the
// identity provider's user ID.
type Profile struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DisplayName    string    `json:"displayName"`
	ExternalUserID string    `json:"externalUserId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
