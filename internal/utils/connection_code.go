package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/yukikurage/property-management-api/internal/constants"
)

// GenerateConnectionCode returns a random code of ConnectionCodeLength
// characters drawn uniformly from ConnectionCodeAlphabet.
func GenerateConnectionCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(constants.ConnectionCodeAlphabet)))
	code := make([]byte, constants.ConnectionCodeLength)

	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		code[i] = constants.ConnectionCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}
