package models

import "time"

// User is an authenticated CRM operator.
//
// PasswordHash holds an algorithm-tagged hash string (PHC or modular crypt
// format) and is never serialized to JSON.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// FullName returns the display name snapshotted onto activities.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserCreate is the registration payload.
type UserCreate struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// Credentials is the username/password pair accepted by both the JSON login
// endpoint and the form-encoded token endpoint.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
