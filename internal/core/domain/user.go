package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is an account identified by its email address. The password is stored
// as an scrypt hash alongside the random salt it was derived with; the
// plaintext never leaves the signup/login request.
type User struct {
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	PasswordSalt string    `json:"-" bson:"password_salt"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
