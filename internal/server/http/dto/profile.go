package dto

// ProfileResponse carries account email and contact details.
type ProfileResponse struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// ProfileUpdateRequest overwrites contact details.
type ProfileUpdateRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}
