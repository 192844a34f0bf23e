// Package models defines the persisted entities and the API error types
// shared across the application.
package models

import "time"

// Post is the sole persisted entity of the bulletin board. Records are
// stored as JSON in the keyed store under "post:<id>".
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
}
