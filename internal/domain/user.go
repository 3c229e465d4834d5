package domain

// User is an authenticated operator account. Passwords are stored as bcrypt
// hashes and never leave the repository layer in serialized form.
type User struct {
	ID           int64
	Username     string
	Email        *string
	PasswordHash string
	Role         *string // e.g. 'admin', 'engineer'; informational in v1
}
