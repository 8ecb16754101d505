package progress

import "kalvihub/internal/account"

// Achievement ids. Each unlocks at most once per account.
const (
	AchievementFirstAssessment  = "first_assessment"
	AchievementWeekStreak       = "week_streak"
	AchievementMonthStreak      = "month_streak"
	AchievementAssessmentMaster = "assessment_master"
	AchievementHourScholar      = "hour_scholar"
	AchievementDedicatedLearner = "dedicated_learner"
)

const (
	weekStreakDays       = 7
	monthStreakDays      = 30
	masterScoreThreshold = 90
	hourScholarMinutes   = 60
	dedicatedMinutes     = 600
)

// evaluateAchievements runs the rule set against the account state after an
// activity and appends any newly unlocked ids. Returns the new unlocks.
func evaluateAchievements(acc *account.Account, subject string, kind ActivityKind, score *int) []string {
	var unlocked []string

	award := func(id string) {
		if !acc.HasAchievement(id) {
			acc.Achievements = append(acc.Achievements, id)
			unlocked = append(unlocked, id)
		}
	}

	if kind == ActivityAssessment {
		award(AchievementFirstAssessment)
	}

	if acc.StreakLength == weekStreakDays {
		award(AchievementWeekStreak)
	}
	if acc.StreakLength == monthStreakDays {
		award(AchievementMonthStreak)
	}

	if p, ok := acc.Progress[subject]; ok && p.Percentage >= 100 {
		award(subject + "_master")
	}

	if score != nil && *score >= masterScoreThreshold {
		award(AchievementAssessmentMaster)
	}

	if acc.TotalActivityMinutes >= hourScholarMinutes {
		award(AchievementHourScholar)
	}
	if acc.TotalActivityMinutes >= dedicatedMinutes {
		award(AchievementDedicatedLearner)
	}

	return unlocked
}
