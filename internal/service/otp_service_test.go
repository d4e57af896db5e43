package service

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateOTPCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)

	for i := 0; i < 50; i++ {
		code, err := generateOTPCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestOTPHashRoundTrip(t *testing.T) {
	code, err := generateOTPCode()
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte(code)))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("000000")))
}

func newOTPFixture(t *testing.T) (*OTPService, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewOTPService(client, nil, logrus.New()), client
}

func seedOTP(t *testing.T, client *redis.Client, email, code string, expiresAt time.Time) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	require.NoError(t, err)

	payload, err := json.Marshal(otpRecord{Hash: string(hash), ExpiresAt: expiresAt})
	require.NoError(t, err)
	require.NoError(t, client.Set(context.Background(), otpKeyPrefix+email, payload, otpTTL).Err())
}

func TestVerifyAcceptsCodeOnlyOnce(t *testing.T) {
	svc, client := newOTPFixture(t)
	seedOTP(t, client, "user@example.com", "123456", time.Now().Add(otpTTL))

	require.NoError(t, svc.Verify(context.Background(), "user@example.com", "123456"))

	// The code was consumed on the first verification.
	err := svc.Verify(context.Background(), "user@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	svc, client := newOTPFixture(t)
	seedOTP(t, client, "user@example.com", "123456", time.Now().Add(otpTTL))

	err := svc.Verify(context.Background(), "user@example.com", "654321")
	assert.ErrorIs(t, err, ErrOTPInvalid)

	// A wrong guess does not consume the code.
	assert.NoError(t, svc.Verify(context.Background(), "user@example.com", "123456"))
}

func TestVerifyRejectsExpiredCode(t *testing.T) {
	svc, client := newOTPFixture(t)
	seedOTP(t, client, "user@example.com", "123456", time.Now().Add(-time.Minute))

	err := svc.Verify(context.Background(), "user@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestVerifyUnknownEmail(t *testing.T) {
	svc, _ := newOTPFixture(t)

	err := svc.Verify(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}
