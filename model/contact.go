package model

import "time"

// Contact is a stored contact-form submission. Records are immutable once
// created; the only mutation path is an admin delete.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Email     string    `json:"email" gorm:"not null;index;size:255"`
	Subject   string    `json:"subject" gorm:"not null;size:255"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
