package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed above the library default so brute-forcing stolen
// digests stays expensive.
const bcryptCost = 12

// HashPassword returns a one-way bcrypt digest with an embedded salt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
