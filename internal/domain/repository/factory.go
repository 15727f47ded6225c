package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Profiles() ProfileRepository
	Quotations() QuotationRepository
	Contacts() ContactRepository
	CheckoutSessions() CheckoutSessionRepository
}
