// Package auth implements registration, login with lockout, email
// verification and password reset over an injected account store.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"kalvihub/internal/account"
	"kalvihub/internal/attempts"
	"kalvihub/internal/curriculum"
	"kalvihub/internal/mail"
	"kalvihub/pkg/utils"
)

const (
	MaxLoginAttempts = 5
	LockDuration     = 30 * time.Minute
	ResetTokenTTL    = time.Hour
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CredentialVerifier hashes and checks passwords. Production uses argon2id;
// tests may substitute a cheap implementation.
type CredentialVerifier interface {
	Hash(password string) string
	Verify(password, hash string) bool
}

type ArgonVerifier struct{}

func (ArgonVerifier) Hash(password string) string { return utils.HashPassword(password) }

func (ArgonVerifier) Verify(password, hash string) bool { return utils.VerifyPassword(password, hash) }

type Service struct {
	store      account.Store
	ledger     attempts.Ledger
	dispatcher mail.Dispatcher
	locks      *account.Locker
	verifier   CredentialVerifier
	now        func() time.Time
}

func NewService(store account.Store, ledger attempts.Ledger, dispatcher mail.Dispatcher, locks *account.Locker) *Service {
	return &Service{
		store:      store,
		ledger:     ledger,
		dispatcher: dispatcher,
		locks:      locks,
		verifier:   ArgonVerifier{},
		now:        time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Grade    string
	School   string
}

// Register creates an unverified account and returns the sanitized account
// together with the raw verification token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*account.Account, string, error) {
	if len(strings.TrimSpace(input.Name)) < 2 {
		return nil, "", account.Invalid("Name must be at least 2 characters long")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, "", account.Invalid("Please enter a valid email address")
	}
	if policy := EvaluatePassword(input.Password); !policy.Valid {
		return nil, "", account.Invalid(policy.Reasons...)
	}
	if !curriculum.SupportedGrade(input.Grade) {
		return nil, "", account.Invalid("Only Class 10 students are currently supported")
	}
	if len(strings.TrimSpace(input.School)) < 2 {
		return nil, "", account.Invalid("School name is required")
	}

	if _, err := s.store.FindByEmail(ctx, input.Email); err == nil {
		return nil, "", account.ErrDuplicateAccount
	} else if !errors.Is(err, account.ErrNotFound) {
		return nil, "", err
	}

	token := utils.GenerateToken()
	acc := &account.Account{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(input.Name),
		Email:             strings.ToLower(input.Email),
		School:            strings.TrimSpace(input.School),
		Grade:             input.Grade,
		PasswordHash:      s.verifier.Hash(input.Password),
		VerificationToken: token,
		CreatedAt:         s.now(),
		Achievements:      []string{},
		Progress:          seedProgress(input.Grade),
	}

	if err := s.store.Save(ctx, acc); err != nil {
		return nil, "", err
	}

	if err := s.dispatcher.SendVerification(acc.Email, acc.Name, token); err != nil {
		log.Warnf("failed to send verification mail to %s: %v", acc.Email, err)
	}

	return acc.Sanitized(), token, nil
}

// Login authenticates a user. Every call is recorded in the attempt ledger,
// including early exits.
func (s *Service) Login(ctx context.Context, email, password, sourceAddr string) (*account.Account, error) {
	now := s.now()

	// Provisional failure entry so the ledger sees every attempt.
	s.recordAttempt(ctx, email, false, sourceAddr, now)

	found, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, account.ErrNotFound) {
		return nil, account.ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(found.ID)
	defer unlock()

	// Reload under the lock; the failure counter below is check-then-act.
	acc, err := s.store.FindByID(ctx, found.ID)
	if err != nil {
		return nil, account.ErrInvalidCredentials
	}

	if acc.Locked(now) {
		return nil, &account.LockedError{Remaining: acc.LockRemaining(now)}
	}

	if !s.verifier.Verify(password, acc.PasswordHash) {
		acc.LoginFailureCount++
		if acc.LoginFailureCount >= MaxLoginAttempts {
			until := now.Add(LockDuration)
			acc.LockedUntil = &until
		}
		if err := s.store.Save(ctx, acc); err != nil {
			return nil, err
		}
		return nil, account.ErrInvalidCredentials
	}

	// Checked after the password so a failed guess cannot probe
	// verification status.
	if !acc.IsVerified {
		return nil, account.ErrEmailNotVerified
	}

	acc.LoginFailureCount = 0
	acc.LockedUntil = nil
	acc.LastLoginAt = &now
	acc.TouchStreak(now)

	if err := s.store.Save(ctx, acc); err != nil {
		return nil, err
	}

	s.recordAttempt(ctx, email, true, sourceAddr, now)

	return acc.Sanitized(), nil
}

// VerifyEmail redeems a verification token. Tokens are single use.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	found, err := s.store.FindByVerificationToken(ctx, token)
	if errors.Is(err, account.ErrNotFound) {
		return account.ErrInvalidToken
	} else if err != nil {
		return err
	}

	unlock := s.locks.Lock(found.ID)
	defer unlock()

	// Reload under the lock so a concurrent update is not overwritten.
	acc, err := s.store.FindByID(ctx, found.ID)
	if err != nil {
		return account.ErrInvalidToken
	}
	if acc.VerificationToken != token {
		return account.ErrInvalidToken
	}

	acc.IsVerified = true
	acc.VerificationToken = ""

	return s.store.Save(ctx, acc)
}

// RequestPasswordReset issues a reset token valid for one hour. The empty
// return for unknown emails is deliberate; callers report success either way
// so the endpoint cannot be used to enumerate accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	found, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, account.ErrNotFound) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	unlock := s.locks.Lock(found.ID)
	defer unlock()

	acc, err := s.store.FindByID(ctx, found.ID)
	if err != nil {
		return "", err
	}

	token := utils.GenerateToken()
	expiry := s.now().Add(ResetTokenTTL)
	acc.ResetToken = token
	acc.ResetTokenExpiry = &expiry

	if err := s.store.Save(ctx, acc); err != nil {
		return "", err
	}

	if err := s.dispatcher.SendPasswordReset(acc.Email, acc.Name, token); err != nil {
		log.Warnf("failed to send reset mail to %s: %v", acc.Email, err)
	}

	return token, nil
}

// ResetPassword redeems a reset token and installs a new password. A
// successful reset also clears any lockout.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	found, err := s.store.FindByResetToken(ctx, token)
	if errors.Is(err, account.ErrNotFound) {
		return account.ErrInvalidResetToken
	} else if err != nil {
		return err
	}

	unlock := s.locks.Lock(found.ID)
	defer unlock()

	acc, err := s.store.FindByID(ctx, found.ID)
	if err != nil {
		return account.ErrInvalidResetToken
	}
	if acc.ResetToken != token {
		return account.ErrInvalidResetToken
	}

	if acc.ResetTokenExpiry == nil || acc.ResetTokenExpiry.Before(s.now()) {
		return account.ErrInvalidResetToken
	}

	if policy := EvaluatePassword(newPassword); !policy.Valid {
		return account.Invalid(policy.Reasons...)
	}

	acc.PasswordHash = s.verifier.Hash(newPassword)
	acc.ResetToken = ""
	acc.ResetTokenExpiry = nil
	acc.LoginFailureCount = 0
	acc.LockedUntil = nil

	return s.store.Save(ctx, acc)
}

// Attempts returns the ledger entries for one email, or the whole ledger when
// email is empty.
func (s *Service) Attempts(ctx context.Context, email string) ([]attempts.Record, error) {
	if email == "" {
		return s.ledger.All(ctx)
	}
	return s.ledger.For(ctx, email)
}

func (s *Service) Stats(ctx context.Context) (account.Stats, error) {
	return s.store.Stats(ctx, s.now())
}

func (s *Service) recordAttempt(ctx context.Context, email string, success bool, sourceAddr string, now time.Time) {
	err := s.ledger.Record(ctx, attempts.Record{
		Email:      strings.ToLower(email),
		Timestamp:  now,
		Success:    success,
		SourceAddr: sourceAddr,
	})
	if err != nil {
		log.Warnf("failed to record login attempt for %s: %v", email, err)
	}
}

func seedProgress(grade string) map[string]*account.SubjectProgress {
	progress := make(map[string]*account.SubjectProgress)
	for _, subject := range curriculum.ForGrade(grade) {
		progress[subject.Key] = &account.SubjectProgress{
			TotalUnits:       subject.TotalUnits,
			TotalAssessments: subject.TotalAssessments,
		}
	}
	return progress
}
