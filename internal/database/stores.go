package database

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kalvihub/internal/account"
	"kalvihub/internal/attempts"
	"kalvihub/internal/sessions"
)

// AccountStore is the gorm-backed account.Store implementation.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*account.Account, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	return s.findOne(ctx, "lower(email) = ?", strings.ToLower(email))
}

func (s *AccountStore) FindByVerificationToken(ctx context.Context, token string) (*account.Account, error) {
	if token == "" {
		return nil, account.ErrNotFound
	}
	return s.findOne(ctx, "verification_token = ?", token)
}

func (s *AccountStore) FindByResetToken(ctx context.Context, token string) (*account.Account, error) {
	if token == "" {
		return nil, account.ErrNotFound
	}
	return s.findOne(ctx, "reset_token = ?", token)
}

func (s *AccountStore) findOne(ctx context.Context, query string, args ...any) (*account.Account, error) {
	var row Account
	result := s.db.WithContext(ctx).Preload("Progress").First(&row, append([]any{query}, args...)...)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, result.Error
	}
	return toDomain(&row)
}

func (s *AccountStore) Save(ctx context.Context, a *account.Account) error {
	row, progressRows, err := fromDomain(a)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error; err != nil {
			return err
		}
		for i := range progressRows {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&progressRows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *AccountStore) Stats(ctx context.Context, now time.Time) (account.Stats, error) {
	var stats account.Stats
	var total, verified, locked int64

	db := s.db.WithContext(ctx)
	if err := db.Model(&Account{}).Count(&total).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&Account{}).Where("is_verified").Count(&verified).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&Account{}).Where("locked_until > ?", now).Count(&locked).Error; err != nil {
		return stats, err
	}

	stats.TotalUsers = int(total)
	stats.VerifiedUsers = int(verified)
	stats.LockedUsers = int(locked)
	return stats, nil
}

func toDomain(row *Account) (*account.Account, error) {
	var achievements []string
	if row.Achievements != "" {
		if err := json.Unmarshal([]byte(row.Achievements), &achievements); err != nil {
			return nil, err
		}
	}
	if achievements == nil {
		achievements = []string{}
	}

	progress := make(map[string]*account.SubjectProgress, len(row.Progress))
	for _, p := range row.Progress {
		progress[p.Subject] = &account.SubjectProgress{
			CompletedUnits:       p.CompletedUnits,
			TotalUnits:           p.TotalUnits,
			CompletedAssessments: p.CompletedAssessments,
			TotalAssessments:     p.TotalAssessments,
			Percentage:           p.Percentage,
			LastActivityAt:       p.LastActivityAt,
		}
	}

	a := &account.Account{
		ID:                   row.ID,
		Name:                 row.Name,
		Email:                row.Email,
		School:               row.School,
		Grade:                row.Grade,
		PasswordHash:         row.PasswordHash,
		IsVerified:           row.IsVerified,
		ResetTokenExpiry:     row.ResetTokenExpiry,
		LoginFailureCount:    row.LoginFailureCount,
		LockedUntil:          row.LockedUntil,
		CreatedAt:            row.CreatedAt,
		LastLoginAt:          row.LastLoginAt,
		LastActivityDate:     row.LastActivityDate,
		StreakLength:         row.StreakLength,
		TotalActivityMinutes: row.TotalActivityMinutes,
		Achievements:         achievements,
		Progress:             progress,
	}
	if row.VerificationToken != nil {
		a.VerificationToken = *row.VerificationToken
	}
	if row.ResetToken != nil {
		a.ResetToken = *row.ResetToken
	}
	return a, nil
}

func fromDomain(a *account.Account) (*Account, []SubjectProgress, error) {
	achievements, err := json.Marshal(a.Achievements)
	if err != nil {
		return nil, nil, err
	}

	row := &Account{
		ID:                   a.ID,
		Name:                 a.Name,
		Email:                a.Email,
		School:               a.School,
		Grade:                a.Grade,
		PasswordHash:         a.PasswordHash,
		IsVerified:           a.IsVerified,
		ResetTokenExpiry:     a.ResetTokenExpiry,
		LoginFailureCount:    a.LoginFailureCount,
		LockedUntil:          a.LockedUntil,
		CreatedAt:            a.CreatedAt,
		LastLoginAt:          a.LastLoginAt,
		LastActivityDate:     a.LastActivityDate,
		StreakLength:         a.StreakLength,
		TotalActivityMinutes: a.TotalActivityMinutes,
		Achievements:         string(achievements),
	}
	if a.VerificationToken != "" {
		row.VerificationToken = &a.VerificationToken
	}
	if a.ResetToken != "" {
		row.ResetToken = &a.ResetToken
	}

	progressRows := make([]SubjectProgress, 0, len(a.Progress))
	for subject, p := range a.Progress {
		progressRows = append(progressRows, SubjectProgress{
			AccountID:            a.ID,
			Subject:              subject,
			CompletedUnits:       p.CompletedUnits,
			TotalUnits:           p.TotalUnits,
			CompletedAssessments: p.CompletedAssessments,
			TotalAssessments:     p.TotalAssessments,
			Percentage:           p.Percentage,
			LastActivityAt:       p.LastActivityAt,
		})
	}

	return row, progressRows, nil
}

// AttemptLedger is the gorm-backed attempts.Ledger implementation.
type AttemptLedger struct {
	db *gorm.DB
}

func NewAttemptLedger(db *gorm.DB) *AttemptLedger {
	return &AttemptLedger{db: db}
}

func (l *AttemptLedger) Record(ctx context.Context, r attempts.Record) error {
	row := LoginAttempt{
		Email:      r.Email,
		Timestamp:  r.Timestamp,
		Success:    r.Success,
		SourceAddr: r.SourceAddr,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}

	// Housekeeping only; losing old entries never changes lockout decisions.
	return l.db.WithContext(ctx).Exec(
		"DELETE FROM application.login_attempt WHERE id NOT IN (SELECT id FROM application.login_attempt ORDER BY timestamp DESC, id DESC LIMIT ?)",
		attempts.RetentionCap,
	).Error
}

func (l *AttemptLedger) For(ctx context.Context, email string) ([]attempts.Record, error) {
	var rows []LoginAttempt
	result := l.db.WithContext(ctx).
		Where("email = ?", email).
		Order("timestamp DESC, id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return attemptRecords(rows), nil
}

func (l *AttemptLedger) All(ctx context.Context) ([]attempts.Record, error) {
	var rows []LoginAttempt
	result := l.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(attempts.RetentionCap).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return attemptRecords(rows), nil
}

func attemptRecords(rows []LoginAttempt) []attempts.Record {
	out := make([]attempts.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, attempts.Record{
			Email:      row.Email,
			Timestamp:  row.Timestamp,
			Success:    row.Success,
			SourceAddr: row.SourceAddr,
		})
	}
	return out
}

// SessionLog is the gorm-backed sessions.Log implementation.
type SessionLog struct {
	db *gorm.DB
}

func NewSessionLog(db *gorm.DB) *SessionLog {
	return &SessionLog{db: db}
}

func (l *SessionLog) Append(ctx context.Context, s sessions.Session) error {
	row := StudySession{
		UserID:    s.UserID,
		Subject:   s.Subject,
		Activity:  s.Activity,
		Duration:  s.Duration,
		Score:     s.Score,
		Timestamp: s.Timestamp,
	}
	return l.db.WithContext(ctx).Create(&row).Error
}

func (l *SessionLog) For(ctx context.Context, userID string, limit int) ([]sessions.Session, error) {
	var rows []StudySession
	result := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]sessions.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, sessions.Session{
			UserID:    row.UserID,
			Subject:   row.Subject,
			Activity:  row.Activity,
			Duration:  row.Duration,
			Score:     row.Score,
			Timestamp: row.Timestamp,
		})
	}
	return out, nil
}
