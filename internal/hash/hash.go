package hash

import "golang.org/x/crypto/bcrypt"

// Changing Cost invalidates nothing: existing hashes carry their own cost
// factor and keep verifying.
const Cost = 12

func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
