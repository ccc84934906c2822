package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed; raising it invalidates nothing but slows new
// hashes, so changes roll forward naturally as users re-authenticate.
const bcryptCost = 12

// HashPassword hashes the plaintext password with bcrypt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored bcrypt digest.
func CheckPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
