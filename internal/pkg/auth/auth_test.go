// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront API"
	cfg.JWT.Secret = "test-secret-key-for-unit-tests-only"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.Security.BcryptCost = 4 // minimum cost keeps the test fast
	return cfg
}

func TestPasswordManager(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	t.Run("hash and verify round trip", func(t *testing.T) {
		hash, err := pm.HashPassword("Sup3rSecret")
		require.NoError(t, err)
		require.NotEqual(t, "Sup3rSecret", hash)

		assert.NoError(t, pm.VerifyPassword("Sup3rSecret", hash))
		assert.Error(t, pm.VerifyPassword("wrong-password", hash))
	})

	t.Run("validation rules", func(t *testing.T) {
		cases := []struct {
			name     string
			password string
			wantErr  bool
		}{
			{"valid", "Sup3rSecret", false},
			{"too short", "Ab1", true},
			{"no uppercase", "lowercase1", true},
			{"no lowercase", "UPPERCASE1", true},
			{"no number", "NoNumbersHere", true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := pm.ValidatePassword(tc.password)
				if tc.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestJWTManager(t *testing.T) {
	jm := NewJWTManager(testConfig())

	t.Run("generate and validate access token", func(t *testing.T) {
		token, err := jm.GenerateAccessToken(42, "jamie@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := jm.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "jamie@example.com", claims.Email)
		assert.Equal(t, "access", claims.TokenType)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := testConfig()
		other.JWT.Secret = "a-different-secret-entirely"
		token, err := NewJWTManager(other).GenerateAccessToken(1, "a@example.com")
		require.NoError(t, err)

		_, err = jm.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := jm.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Empty(t, ExtractTokenFromHeader("abc123"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Bearer"))
}
