package models

import "time"

// Admin is a database-backed administrator account. The bootstrap admin from
// configuration authenticates against config values and never appears here.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BootstrapAdminID is the subject used in tokens issued to the config-seeded
// admin identity.
const BootstrapAdminID = "bootstrap-admin"
