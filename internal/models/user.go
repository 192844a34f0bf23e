package models

import "time"

// User is an account as the identity provider reports it. The stored
// record (and its password hash) stays inside the identity package;
// this shape is what API responses carry.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
