package model

import "time"

// PendingOtp holds the single live passcode for an email address. The
// unique index on Email backs the upsert in the OTP service so that two
// concurrent issuances can never leave two live rows.
type PendingOtp struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Code      string    `gorm:"not null"`
	CreatedAt time.Time
}
