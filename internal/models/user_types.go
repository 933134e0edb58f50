package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a row of the 'users' table. (username, site) and (email, site) are unique.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	Site         string    `json:"site" db:"site"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Public returns a copy of the user with the password hash cleared.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

// Set hashes the plaintext with the given bcrypt cost. A cost of 0 means bcrypt.DefaultCost.
func (p *Password) Set(plaintextPassword string, cost int) error {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), cost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
