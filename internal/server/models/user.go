// Package models holds the sync backend's persisted records.
package models

import "time"

// User is an account able to sign in and own one snapshot.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}
