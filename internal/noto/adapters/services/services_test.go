package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"noto/internal/noto/adapters/services"
	"noto/internal/noto/domain/entities"
	domainservices "noto/internal/noto/domain/services"
)

const testSecret = "test-secret"

func TestBcryptHash(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	t.Run("valid passcode", func(t *testing.T) {
		hash, err := service.Hash(ctx, "1234")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("1234")))
	})

	t.Run("empty passcode", func(t *testing.T) {
		hash, err := service.Hash(ctx, "")
		require.ErrorIs(t, err, domainservices.ErrInvalidPasscode)
		assert.Empty(t, hash)
	})

	t.Run("too short passcode", func(t *testing.T) {
		hash, err := service.Hash(ctx, "123")
		require.ErrorIs(t, err, domainservices.ErrInvalidPasscode)
		assert.Empty(t, hash)
	})

	t.Run("same passcode hashes differ", func(t *testing.T) {
		h1, err := service.Hash(ctx, "secret")
		require.NoError(t, err)
		h2, err := service.Hash(ctx, "secret")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestBcryptVerify(t *testing.T) {
	service := services.NewBcrypt(0)
	ctx := context.Background()

	hash, err := service.Hash(ctx, "1234")
	require.NoError(t, err)

	tests := []struct {
		name     string
		passcode string
		hash     string
		want     bool
		wantErr  error
	}{
		{name: "match", passcode: "1234", hash: hash, want: true},
		{name: "mismatch", passcode: "4321", hash: hash, want: false},
		{name: "empty passcode", passcode: "", hash: hash, wantErr: domainservices.ErrInvalidPasscode},
		{name: "empty hash", passcode: "1234", hash: "", wantErr: domainservices.ErrInvalidPasscode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := service.Verify(ctx, tt.passcode, tt.hash)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	t.Run("malformed hash", func(t *testing.T) {
		ok, err := service.Verify(ctx, "1234", "not-a-hash")
		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestVaultJWTIssueAndValidate(t *testing.T) {
	service := services.NewJWT(testSecret)
	ctx := context.Background()

	token, expiresAt, err := service.Issue(ctx, entities.VaultTimeoutAfter1Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, entities.VaultTimeoutAfter1Hour, claims.Timeout)
	assert.NotEmpty(t, claims.SessionID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestVaultJWTValidateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty secret", func(t *testing.T) {
		_, _, err := services.NewJWT("").Issue(ctx, entities.VaultTimeoutImmediately)
		require.ErrorIs(t, err, domainservices.ErrGeneratingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := services.NewJWT(testSecret).Validate(ctx, "garbage")
		require.ErrorIs(t, err, domainservices.ErrInvalidVaultToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := services.NewJWT("other").Issue(ctx, entities.VaultTimeoutImmediately)
		require.NoError(t, err)

		_, err = services.NewJWT(testSecret).Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidVaultToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := services.Claims{
			Timeout: entities.VaultTimeoutImmediately,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "session",
				Audience:  jwt.ClaimStrings{"noto-vault"},
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = services.NewJWT(testSecret).Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrExpiredVaultToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			ID:        "session",
			Audience:  jwt.ClaimStrings{"someone-else"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = services.NewJWT(testSecret).Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidVaultToken)
	})
}

func TestSessionTTL(t *testing.T) {
	assert.Equal(t, 5*time.Minute, domainservices.SessionTTL(entities.VaultTimeoutImmediately))
	assert.Equal(t, 24*time.Hour, domainservices.SessionTTL(entities.VaultTimeoutOnAppClose))
	assert.Equal(t, 4*time.Hour, domainservices.SessionTTL(entities.VaultTimeoutAfter4Hours))
	assert.Equal(t, 12*time.Hour, domainservices.SessionTTL(entities.VaultTimeoutAfter12Hours))
}

func TestServiceFactory(t *testing.T) {
	f := services.NewServiceFactory(testSecret, bcrypt.MinCost)
	assert.NotNil(t, f.PasscodeService())
	assert.NotNil(t, f.TokenService())
}
