package models

import "time"

// Preferences is the per-client state the taskpane keeps between visits.
type Preferences struct {
	ClientID          string    `bson:"client_id" json:"clientId"`
	FirstRunCompleted bool      `bson:"first_run_completed" json:"firstRunCompleted"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}
