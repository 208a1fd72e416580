package model

import "time"

type Session struct {
	ID             int64     `json:"id"`
	Token          string    `json:"token"`
	ExternalUserID string    `json:"externalUserId"`
	Email          string    `json:"email"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
}
