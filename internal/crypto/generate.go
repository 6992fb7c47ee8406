package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// MinGeneratedLength and MaxGeneratedLength bound GeneratePassword.
	// bcrypt ignores input past 72 bytes.
	MinGeneratedLength = 12
	MaxGeneratedLength = 72
)

var ErrGeneratedLength = errors.New("generated password length must be between 12 and 72")

// GeneratePassword returns a random password of the given length containing
// at least one uppercase letter, lowercase letter, digit and symbol.
func GeneratePassword(length int) (string, error) {
	if length < MinGeneratedLength || length > MaxGeneratedLength {
		return "", ErrGeneratedLength
	}

	sets := []string{uppercaseChars, lowercaseChars, numberChars, symbolChars}
	pool := uppercaseChars + lowercaseChars + numberChars + symbolChars

	result := make([]byte, length)
	for i, charset := range sets {
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}
	for i := len(sets); i < length; i++ {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := secureShuffle(result); err != nil {
		return "", err
	}
	return string(result), nil
}

func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// secureShuffle is a Fisher-Yates shuffle driven by crypto/rand.
func secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
