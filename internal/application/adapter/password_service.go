package adapter

// PasswordService hashes and checks account passwords for register and login.
type PasswordService interface {
	// HashPassword returns the stored form of a new account password.
	HashPassword(password string) (string, error)
	// VerifyPassword fails when password does not match the stored hash.
	VerifyPassword(hashedPassword, password string) error
	// ValidatePasswordStrength rejects passwords too weak to register with.
	ValidatePasswordStrength(password string) error
}
