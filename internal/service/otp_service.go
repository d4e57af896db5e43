package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrOTPNotFound    = errors.New("otp not found or expired")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("otp does not match")
	ErrResendCooldown = errors.New("please wait before requesting a new otp")
)

const (
	otpKeyPrefix      = "otp:"
	otpCooldownPrefix = "otp:cooldown:"

	otpTTL            = 10 * time.Minute
	otpResendCooldown = 60 * time.Second
)

// otpRecord is what gets stored in Redis: only the bcrypt hash of the code,
// never the plaintext, plus an explicit expiry alongside the key TTL.
type otpRecord struct {
	Hash      string    `json:"hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OTPService issues and verifies one-time codes for email ownership checks.
// Codes live in Redis under otp:<email> with a 10-minute TTL, so at most one
// code is live per address and expired codes vanish on their own.
type OTPService struct {
	redisClient *redis.Client
	mailer      *MailService
	log         *logrus.Logger
}

func NewOTPService(redisClient *redis.Client, mailer *MailService, log *logrus.Logger) *OTPService {
	return &OTPService{
		redisClient: redisClient,
		mailer:      mailer,
		log:         log,
	}
}

// Issue generates a fresh 6-digit code, stores its hash with TTL and emails
// the plaintext to the address. Any previously live code is replaced. If the
// email cannot be delivered the stored code is removed again so the caller
// can fail the surrounding operation cleanly.
func (s *OTPService) Issue(ctx context.Context, email string) error {
	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	record := otpRecord{
		Hash:      string(hash),
		ExpiresAt: time.Now().Add(otpTTL),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := otpKeyPrefix + email
	if err := s.redisClient.Set(ctx, key, payload, otpTTL).Err(); err != nil {
		s.log.Warnf("Failed to store OTP for %s: %+v", email, err)
		return err
	}

	body := fmt.Sprintf("Your OTP is %s. It is valid for %d minutes.", code, int(otpTTL.Minutes()))
	if err := s.mailer.Send([]string{email}, "Your OTP Code", body); err != nil {
		// Do not leave a code the user can never learn about.
		if delErr := s.redisClient.Del(ctx, key).Err(); delErr != nil {
			s.log.Warnf("Failed to clean up undelivered OTP for %s: %+v", email, delErr)
		}
		return fmt.Errorf("send otp email: %w", err)
	}

	return nil
}

// IssueWithCooldown behaves like Issue but rejects a resend inside the
// cooldown window.
func (s *OTPService) IssueWithCooldown(ctx context.Context, email string) error {
	ok, err := s.redisClient.SetNX(ctx, otpCooldownPrefix+email, "1", otpResendCooldown).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrResendCooldown
	}
	return s.Issue(ctx, email)
}

// Verify compares the candidate code against the stored hash. A successful
// verification deletes the record, so each code is accepted at most once.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	key := otpKeyPrefix + email

	payload, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPNotFound
		}
		return err
	}

	var record otpRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		if delErr := s.redisClient.Del(ctx, key).Err(); delErr != nil {
			s.log.Warnf("Failed to delete expired OTP for %s: %+v", email, delErr)
		}
		return ErrOTPExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.Hash), []byte(code)); err != nil {
		return ErrOTPInvalid
	}

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to delete verified OTP for %s: %+v", email, err)
		return err
	}

	return nil
}

// generateOTPCode returns a zero-padded 6-digit numeric code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
