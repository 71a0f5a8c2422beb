package bcryptadapter

import "golang.org/x/crypto/bcrypt"

// Hasher implements ports.PasswordHasher with bcrypt at the default cost.
type Hasher struct{}

func (Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (Hasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
