package user

import "time"

// User is an account holder. Email doubles as the login name. GoogleID is
// set for accounts created through federated login and empty otherwise.
// Admin is derived from the configured admin email at load time and is
// never persisted.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	PasswordHash []byte    `bson:"password_hash" json:"-"`
	GoogleID     string    `bson:"google_id,omitempty" json:"-"`
	Verified     bool      `bson:"verified" json:"verified"`
	Admin        bool      `bson:"-" json:"admin"`
	VerifyToken  string    `bson:"verify_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
