package service

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"prepmate/interview-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OtpValidity is how long a passcode stays usable after issuance.
const OtpValidity = 5 * time.Minute

// OtpService issues and verifies the one-time passcodes used as the second
// login step. Expiry is enforced at verification time instead of by a
// background sweep, so stale rows cost nothing until someone submits a code.
type OtpService struct {
	DB     *gorm.DB
	Mailer Mailer

	// DevFallback makes a failed or unconfigured delivery hand the code
	// back to the caller. Must stay false in production.
	DevFallback bool
}

// IssueResult reports whether the code left through the mail gateway.
// DevCode carries the code itself only when delivery failed and the
// development fallback is on.
type IssueResult struct {
	Delivered bool
	DevCode   string
}

// Issue generates a fresh 6-digit code for the email, replaces any passcode
// still pending for it, and hands the code to the mailer. Delivery problems
// never roll the code back: the row is already persisted and verifiable, so
// a degraded mail gateway only downgrades the result to a warning.
func (s *OtpService) Issue(email string) (*IssueResult, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	// Upsert keyed on the email unique index, so two racing issuances
	// end with exactly one live row and the last writer wins.
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "created_at"}),
	}).Create(&model.PendingOtp{
		Email:     email,
		Code:      code,
		CreatedAt: time.Now(),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store passcode, %w", err)
	}

	if err := s.Mailer.Send(email, code); err != nil {
		zap.L().Warn("Passcode delivery failed, code remains verifiable",
			zap.String("email", email),
			zap.Error(err))

		if s.DevFallback {
			return &IssueResult{DevCode: code}, nil
		}

		return &IssueResult{}, nil
	}

	return &IssueResult{Delivered: true}, nil
}

// Verify checks a submitted code against the pending one for the email and
// returns the matching user ID. The pending row is consumed on success and
// on detected expiry; a plain mismatch keeps it so the user can retry
// within the window. There is no retry cap, matching the behavior this
// service replaces.
func (s *OtpService) Verify(email, code string) (string, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var rec model.PendingOtp

		err := tx.Where("email = ?", email).First(&rec).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOtp
			}

			return fmt.Errorf("failed to look up passcode, %w", err)
		}

		if time.Since(rec.CreatedAt) > OtpValidity {
			if err := tx.Delete(&rec).Error; err != nil {
				return fmt.Errorf("failed to consume expired passcode, %w", err)
			}

			return ErrOtpExpired
		}

		if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
			return ErrInvalidOtp
		}

		if err := tx.Delete(&rec).Error; err != nil {
			return fmt.Errorf("failed to consume passcode, %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	var user model.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The code was valid but no account backs the email. The
			// passcode is gone either way, treat it as a hard failure.
			return "", ErrInvalidOtp
		}

		return "", fmt.Errorf("failed to look up user, %w", err)
	}

	return user.ID, nil
}

// generateCode draws a uniform integer in [100000, 999999]. The lower
// bound keeps the decimal rendering at six digits, no padding needed.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate passcode, %w", err)
	}

	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
