package model

import "time"

// ContactSubmission is an inbound inquiry from the public contact form.
// It is independent of the quotation lifecycle and only surfaces in the
// admin read model.
type ContactSubmission struct {
	ID          int64
	Name        *string
	Company     *string
	Email       *string
	Phone       *string
	ServiceType *string
	Message     *string
	FilePath    *string
	CreatedAt   time.Time
}
