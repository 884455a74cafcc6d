package security

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored credentials.
const PasswordCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var dummyHash = sync.OnceValue(func() string {
	hash, _ := HashPassword("dummy-password-for-unknown-users")
	return hash
})

// BurnPasswordCheck performs a comparison against a throwaway hash so that a
// lookup miss takes as long as a wrong password.
func BurnPasswordCheck(password string) {
	_ = CheckPasswordHash(password, dummyHash())
}
