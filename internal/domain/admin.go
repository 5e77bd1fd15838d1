package domain

import "time"

// Admin администратор (владелец бизнеса)
type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
