package domain

// Account is the domain model for the identities the gateway can vouch for.
type Account struct {
	ID           string
	Email        string
	Username     string
	Plan         string
	PasswordHash string
}
