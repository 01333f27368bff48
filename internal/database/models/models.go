// Package models defines the data structures for database entities of the
// Agri-Naija Centre CMS: administrators, articles and login sessions.
package models

import (
	"time"
)

// Administrator represents a management account
type Administrator struct {
	ID                       int64     `db:"id" json:"id"`
	Username                 string    `db:"username" json:"username"`
	Email                    string    `db:"email" json:"email"`
	PasswordHash             string    `db:"password_hash" json:"-"`
	PasswordRotationRequired bool      `db:"password_rotation_required" json:"password_rotation_required"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
}

// Article represents a published article
type Article struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	Category   string    `db:"category" json:"category"`
	DatePosted time.Time `db:"date_posted" json:"date_posted"`
}

// ArticleSummary is the projection of an article used by listings; it never
// carries the content body.
type ArticleSummary struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Category   string    `db:"category" json:"category"`
	DatePosted time.Time `db:"date_posted" json:"date_posted"`
}

// Session represents a login session bound to an administrator
type Session struct {
	ID              string    `db:"id" json:"id"`
	AdministratorID int64     `db:"administrator_id" json:"administrator_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	ExpiresAt       time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
