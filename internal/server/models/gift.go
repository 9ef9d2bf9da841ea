// Package models defines server-side data models persisted in the database.
package models

import (
	"database/sql"
	"time"
)

// Gift is a row of the gifts table. Photo references live in gift_photos.
type Gift struct {
	ID            string       `db:"id"`
	SenderName    string       `db:"sender_name"`
	RecipientName string       `db:"recipient_name"`
	Message       string       `db:"message"`
	VoiceRef      string       `db:"voice_ref"`
	CreatedAt     time.Time    `db:"created_at"`
	OpenedAt      sql.NullTime `db:"opened_at"`
}

// Photo is a row of gift_photos. Position keeps the order the sender
// attached them in.
type Photo struct {
	GiftID   string `db:"gift_id"`
	URL      string `db:"photo_url"`
	Position int    `db:"position"`
}
