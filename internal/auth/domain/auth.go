package domain

// RegisterInput contains the parameters for creating a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Credentials contains the parameters for a password login.
type Credentials struct {
	Username string
	Password string
}
