package model

// Profile carries customer contact details used to prefill checkout.
// The quotation core reads it but never mutates it after signup.
type Profile struct {
	UserID   int64
	FullName *string
	Phone    *string
}
