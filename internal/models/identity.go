// Package models holds the data types shared by the client, the service and
// the upload pipeline.
package models

import "time"

// Identity is the authenticated user as seen by the rest of the app.
// It is what gets persisted under common.SessionKey.
type Identity struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"displayName"`
	SessionStartedAt time.Time `json:"sessionStartedAt"`
}

// Credential is a directory record. Email is stored lower-cased and is unique.
type Credential struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	CreatedAt    time.Time
}
