package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/property-management-api/internal/constants"
)

func TestGenerateConnectionCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 200; i++ {
		code, err := GenerateConnectionCode()
		require.NoError(t, err)
		require.Len(t, code, constants.ConnectionCodeLength)

		for _, ch := range code {
			assert.True(t, strings.ContainsRune(constants.ConnectionCodeAlphabet, ch), "unexpected character %q", ch)
		}
		seen[code] = struct{}{}
	}

	// 36^6 possible codes; 200 draws should essentially never collide.
	assert.Greater(t, len(seen), 190)
}
