package models

import "time"

// Snapshot is the opaque client document stored per user. The server never
// looks inside Data beyond checking that it is JSON.
type Snapshot struct {
	UserID    string
	Data      []byte
	UpdatedAt time.Time
}
