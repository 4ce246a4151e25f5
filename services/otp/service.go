package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/logging"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
	"go.uber.org/zap"
)

var ErrUnsupportedDigits = errors.New("OTP length must be 6 or 8 digits")

// secretSize matches the RFC 4226 recommended 160-bit shared secret.
const secretSize = 20

// Service issues numeric pickup codes. Every code is derived from a fresh
// random secret and counter, so codes are independent across claims.
type Service struct {
	digits otp.Digits
	random io.Reader
	logger *logging.Service
}

func NewService(cfg *config.Config, logger *logging.Service) (*Service, error) {
	var digits otp.Digits
	switch cfg.Pickup.OTPDigits {
	case 6:
		digits = otp.DigitsSix
	case 8:
		digits = otp.DigitsEight
	default:
		return nil, ErrUnsupportedDigits
	}

	return &Service{
		digits: digits,
		random: rand.Reader,
		logger: logger,
	}, nil
}

func (s *Service) Digits() int {
	return s.digits.Length()
}

// Generate returns a new numeric code.
func (s *Service) Generate() (string, error) {
	buf := make([]byte, secretSize+8)
	if _, err := io.ReadFull(s.random, buf); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to read OTP entropy", zap.Error(err))
		}
		return "", fmt.Errorf("failed to read OTP entropy: %w", err)
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf[:secretSize])
	counter := binary.BigEndian.Uint64(buf[secretSize:])

	code, err := hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
		Digits:    s.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	return code, nil
}

// Equal compares a submitted code against the stored one in constant time.
func Equal(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
