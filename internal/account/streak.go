package account

import "time"

// TouchStreak advances the daily-activity streak for an event at now.
// Re-entry on the same calendar date is a no-op, the day after the last
// activity extends the streak, any longer gap restarts it at 1.
func (a *Account) TouchStreak(now time.Time) {
	today := dateOf(now)

	if a.LastActivityDate == nil {
		a.StreakLength = 1
		a.LastActivityDate = &today
		return
	}

	last := dateOf(*a.LastActivityDate)
	switch {
	case last.Equal(today):
		// Already counted today.
	case last.AddDate(0, 0, 1).Equal(today):
		a.StreakLength++
		a.LastActivityDate = &today
	default:
		a.StreakLength = 1
		a.LastActivityDate = &today
	}
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
