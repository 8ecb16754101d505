// Package account owns the user account model and the storage contract it is
// persisted through. All mutation happens inside the platform services, under
// the per-account lock handed out by Locker.
package account

import "time"

type SubjectProgress struct {
	CompletedUnits       int        `json:"completed_units"`
	TotalUnits           int        `json:"total_units"`
	CompletedAssessments int        `json:"completed_assessments"`
	TotalAssessments     int        `json:"total_assessments"`
	Percentage           int        `json:"percentage"`
	LastActivityAt       *time.Time `json:"last_activity_at,omitempty"`
}

type Account struct {
	ID                   string                      `json:"id"`
	Name                 string                      `json:"name"`
	Email                string                      `json:"email"`
	School               string                      `json:"school"`
	Grade                string                      `json:"grade"`
	PasswordHash         string                      `json:"-"`
	IsVerified           bool                        `json:"is_verified"`
	VerificationToken    string                      `json:"-"`
	ResetToken           string                      `json:"-"`
	ResetTokenExpiry     *time.Time                  `json:"-"`
	LoginFailureCount    int                         `json:"-"`
	LockedUntil          *time.Time                  `json:"-"`
	CreatedAt            time.Time                   `json:"created_at"`
	LastLoginAt          *time.Time                  `json:"last_login_at,omitempty"`
	LastActivityDate     *time.Time                  `json:"last_activity_date,omitempty"`
	StreakLength         int                         `json:"streak_length"`
	TotalActivityMinutes int                         `json:"total_activity_minutes"`
	Achievements         []string                    `json:"achievements"`
	Progress             map[string]*SubjectProgress `json:"progress"`
}

// Locked reports whether the account is still inside a lockout window.
func (a *Account) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

// LockRemaining returns how long the current lockout lasts, zero when unlocked.
func (a *Account) LockRemaining(now time.Time) time.Duration {
	if a.LockedUntil == nil {
		return 0
	}
	if remaining := a.LockedUntil.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// HasAchievement reports whether the achievement id has been unlocked already.
func (a *Account) HasAchievement(id string) bool {
	for _, unlocked := range a.Achievements {
		if unlocked == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so stored accounts never alias returned ones.
func (a *Account) Clone() *Account {
	clone := *a

	clone.Achievements = append([]string(nil), a.Achievements...)

	clone.Progress = make(map[string]*SubjectProgress, len(a.Progress))
	for subject, progress := range a.Progress {
		p := *progress
		if progress.LastActivityAt != nil {
			at := *progress.LastActivityAt
			p.LastActivityAt = &at
		}
		clone.Progress[subject] = &p
	}

	copyTime := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := *t
		return &v
	}
	clone.ResetTokenExpiry = copyTime(a.ResetTokenExpiry)
	clone.LockedUntil = copyTime(a.LockedUntil)
	clone.LastLoginAt = copyTime(a.LastLoginAt)
	clone.LastActivityDate = copyTime(a.LastActivityDate)

	return &clone
}

// Sanitized returns a copy with credential material and pending tokens
// stripped, safe to hand back to callers.
func (a *Account) Sanitized() *Account {
	clone := a.Clone()
	clone.PasswordHash = ""
	clone.VerificationToken = ""
	clone.ResetToken = ""
	clone.ResetTokenExpiry = nil
	return clone
}
