// Package progress maintains per-subject completion counters, the daily
// streak and achievement unlocks.
package progress

import (
	"context"
	"math"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"kalvihub/internal/account"
	"kalvihub/internal/curriculum"
	"kalvihub/internal/sessions"
)

type ActivityKind string

const (
	ActivityAssessment ActivityKind = "assessment"
	ActivityUnit       ActivityKind = "unit"
	ActivityFreeform   ActivityKind = "freeform"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityAssessment, ActivityUnit, ActivityFreeform:
		return true
	}
	return false
}

// Details describes what happened during one activity.
type Details struct {
	Score               *int
	DurationMinutes     int
	UnitCompleted       bool
	AssessmentCompleted bool
}

const defaultSessionLimit = 10

type Service struct {
	store account.Store
	log   sessions.Log
	locks *account.Locker
	now   func() time.Time
}

func NewService(store account.Store, sessionLog sessions.Log, locks *account.Locker) *Service {
	return &Service{
		store: store,
		log:   sessionLog,
		locks: locks,
		now:   time.Now,
	}
}

// RecordActivity applies one activity to the user's progress: completion
// counters, weighted percentage, study time, streak and achievements. Returns
// the sanitized updated account.
func (s *Service) RecordActivity(ctx context.Context, userID, subject string, kind ActivityKind, details Details) (*account.Account, error) {
	if !kind.Valid() {
		return nil, account.Invalid("Unknown activity type")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	acc, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	info, ok := curriculum.Lookup(acc.Grade, subject)
	if !ok {
		return nil, account.ErrUnsupportedSubject
	}

	now := s.now()

	p, ok := acc.Progress[subject]
	if !ok {
		p = &account.SubjectProgress{
			TotalUnits:       info.TotalUnits,
			TotalAssessments: info.TotalAssessments,
		}
		acc.Progress[subject] = p
	}

	if details.UnitCompleted && p.CompletedUnits < p.TotalUnits {
		p.CompletedUnits++
	}
	if details.AssessmentCompleted && p.CompletedAssessments < p.TotalAssessments {
		p.CompletedAssessments++
	}

	p.Percentage = percentage(p)
	p.LastActivityAt = &now

	if details.DurationMinutes > 0 {
		acc.TotalActivityMinutes += details.DurationMinutes
	}

	acc.TouchStreak(now)
	evaluateAchievements(acc, subject, kind, details.Score)

	if err := s.store.Save(ctx, acc); err != nil {
		return nil, err
	}

	err = s.log.Append(ctx, sessions.Session{
		UserID:    userID,
		Subject:   subject,
		Activity:  string(kind),
		Duration:  details.DurationMinutes,
		Score:     details.Score,
		Timestamp: now,
	})
	if err != nil {
		log.Warnf("failed to record study session for %s: %v", userID, err)
	}

	return acc.Sanitized(), nil
}

// Progress returns the sanitized account with its current progress state.
func (s *Service) Progress(ctx context.Context, userID string) (*account.Account, error) {
	acc, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return acc.Sanitized(), nil
}

// Sessions returns the most recent study sessions, newest first.
func (s *Service) Sessions(ctx context.Context, userID string, limit int) ([]sessions.Session, error) {
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	if _, err := s.store.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.log.For(ctx, userID, limit)
}

// percentage weighs units at 60% and assessments at 40%, rounded to the
// nearest integer.
func percentage(p *account.SubjectProgress) int {
	var units, assessments float64
	if p.TotalUnits > 0 {
		units = float64(p.CompletedUnits) / float64(p.TotalUnits) * 60
	}
	if p.TotalAssessments > 0 {
		assessments = float64(p.CompletedAssessments) / float64(p.TotalAssessments) * 40
	}
	return int(math.Round(units + assessments))
}
