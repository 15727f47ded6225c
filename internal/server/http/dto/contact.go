package dto

import "time"

// ContactRequest describes the public inquiry form payload.
type ContactRequest struct {
	Name        *string `json:"name,omitempty"`
	Company     *string `json:"company,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ServiceType *string `json:"service_type,omitempty"`
	Message     *string `json:"message,omitempty"`
	FilePath    *string `json:"file_path,omitempty"`
}

// ContactResponse is the wire form of one stored inquiry.
type ContactResponse struct {
	ID          int64     `json:"id"`
	Name        *string   `json:"name,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	ServiceType *string   `json:"service_type,omitempty"`
	Message     *string   `json:"message,omitempty"`
	FilePath    *string   `json:"file_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
