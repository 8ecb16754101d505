package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kalvihub/internal/account"
)

func testAccount() *account.Account {
	return &account.Account{
		ID:           "u1",
		Achievements: []string{},
		Progress: map[string]*account.SubjectProgress{
			"tamil": {TotalUnits: 10, TotalAssessments: 30},
		},
	}
}

func TestFirstAssessmentOnlyForAssessments(t *testing.T) {
	acc := testAccount()

	unlocked := evaluateAchievements(acc, "tamil", ActivityUnit, nil)
	assert.Empty(t, unlocked)

	unlocked = evaluateAchievements(acc, "tamil", ActivityAssessment, nil)
	assert.Equal(t, []string{AchievementFirstAssessment}, unlocked)
}

func TestAchievementIdempotence(t *testing.T) {
	acc := testAccount()
	acc.StreakLength = 7
	acc.TotalActivityMinutes = 60

	first := evaluateAchievements(acc, "tamil", ActivityAssessment, intp(95))
	assert.ElementsMatch(t, []string{
		AchievementFirstAssessment,
		AchievementWeekStreak,
		AchievementAssessmentMaster,
		AchievementHourScholar,
	}, first)

	// Re-evaluating at the same qualifying state unlocks nothing new.
	again := evaluateAchievements(acc, "tamil", ActivityAssessment, intp(95))
	assert.Empty(t, again)
	assert.Len(t, acc.Achievements, 4)
}

func TestStreakAchievementsFireAtExactLength(t *testing.T) {
	acc := testAccount()

	acc.StreakLength = 6
	assert.Empty(t, evaluateAchievements(acc, "tamil", ActivityFreeform, nil))

	acc.StreakLength = 7
	assert.Equal(t, []string{AchievementWeekStreak}, evaluateAchievements(acc, "tamil", ActivityFreeform, nil))

	acc.StreakLength = 30
	assert.Equal(t, []string{AchievementMonthStreak}, evaluateAchievements(acc, "tamil", ActivityFreeform, nil))
}

func TestSubjectMaster(t *testing.T) {
	acc := testAccount()
	acc.Progress["tamil"].Percentage = 99
	assert.Empty(t, evaluateAchievements(acc, "tamil", ActivityFreeform, nil))

	acc.Progress["tamil"].Percentage = 100
	assert.Equal(t, []string{"tamil_master"}, evaluateAchievements(acc, "tamil", ActivityFreeform, nil))
}

func TestScoreThreshold(t *testing.T) {
	acc := testAccount()
	acc.Achievements = []string{AchievementFirstAssessment}

	assert.Empty(t, evaluateAchievements(acc, "tamil", ActivityAssessment, intp(89)))
	assert.Equal(t, []string{AchievementAssessmentMaster}, evaluateAchievements(acc, "tamil", ActivityAssessment, intp(90)))
}

func TestDedicatedLearner(t *testing.T) {
	acc := testAccount()
	acc.TotalActivityMinutes = 600

	unlocked := evaluateAchievements(acc, "tamil", ActivityFreeform, nil)
	assert.ElementsMatch(t, []string{AchievementHourScholar, AchievementDedicatedLearner}, unlocked)
}
