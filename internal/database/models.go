package database

import "time"

type Account struct {
	ID                   string     `json:"id" gorm:"primaryKey"`
	Name                 string     `json:"name"`
	Email                string     `json:"email" gorm:"uniqueIndex"`
	School               string     `json:"school"`
	Grade                string     `json:"grade"`
	PasswordHash         string     `json:"-"`
	IsVerified           bool       `json:"is_verified" gorm:"default:false"`
	VerificationToken    *string    `json:"-" gorm:"index"`
	ResetToken           *string    `json:"-" gorm:"index"`
	ResetTokenExpiry     *time.Time `json:"-"`
	LoginFailureCount    int        `json:"-" gorm:"default:0"`
	LockedUntil          *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at" gorm:"default:now()"`
	LastLoginAt          *time.Time `json:"last_login_at"`
	LastActivityDate     *time.Time `json:"last_activity_date"`
	StreakLength         int        `json:"streak_length" gorm:"default:0"`
	TotalActivityMinutes int        `json:"total_activity_minutes" gorm:"default:0"`
	Achievements         string     `json:"achievements" gorm:"type:jsonb;default:'[]'"`

	Progress []SubjectProgress `json:"progress" gorm:"foreignKey:AccountID;references:ID"`
}

func (a *Account) TableName() string {
	return "application.account"
}

type SubjectProgress struct {
	AccountID            string     `json:"account_id" gorm:"primaryKey"`
	Subject              string     `json:"subject" gorm:"primaryKey"`
	CompletedUnits       int        `json:"completed_units" gorm:"default:0"`
	TotalUnits           int        `json:"total_units"`
	CompletedAssessments int        `json:"completed_assessments" gorm:"default:0"`
	TotalAssessments     int        `json:"total_assessments"`
	Percentage           int        `json:"percentage" gorm:"default:0"`
	LastActivityAt       *time.Time `json:"last_activity_at"`
}

func (p *SubjectProgress) TableName() string {
	return "application.subject_progress"
}

type LoginAttempt struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"index"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
	Success    bool      `json:"success"`
	SourceAddr string    `json:"source_addr"`
}

func (a *LoginAttempt) TableName() string {
	return "application.login_attempt"
}

type StudySession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	Subject   string    `json:"subject"`
	Activity  string    `json:"activity"`
	Duration  int       `json:"duration"`
	Score     *int      `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *StudySession) TableName() string {
	return "application.study_session"
}
