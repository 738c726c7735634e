package model

import "time"

// Visitor is keyed by IP address in practice: lookups use the first row
// matching the IP, there is no unique constraint on the column.
type Visitor struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text;not null"`
	IPAddress  string    `json:"ip_address" gorm:"index;size:64"`
	UserAgent  string    `json:"user_agent" gorm:"size:512"`
	FirstVisit time.Time `json:"first_visit" gorm:"not null"`
	LastVisit  time.Time `json:"last_visit" gorm:"not null;index"`
}

// PageView belongs to a Visitor and is deleted with it when old visitors are
// cleaned up.
type PageView struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	VisitorID string    `json:"visitor_id" gorm:"not null;index"`
	Page      string    `json:"page" gorm:"not null;index;size:255"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"not null"`
}
