// Package curriculum holds the static Tamil Nadu SSLC subject catalogue used
// to seed and validate per-subject progress.
package curriculum

const GradeSSLC = "10"

type Subject struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	TotalUnits       int    `json:"total_units"`
	TotalAssessments int    `json:"total_assessments"`
}

var gradeSubjects = map[string][]Subject{
	GradeSSLC: {
		{Key: "tamil", Name: "Tamil", TotalUnits: 10, TotalAssessments: 30},
		{Key: "english", Name: "English", TotalUnits: 12, TotalAssessments: 36},
		{Key: "mathematics", Name: "Mathematics", TotalUnits: 8, TotalAssessments: 40},
		{Key: "science", Name: "Science", TotalUnits: 16, TotalAssessments: 48},
		{Key: "social", Name: "Social Science", TotalUnits: 24, TotalAssessments: 72},
	},
}

// SupportedGrade reports whether accounts can register for the given grade.
func SupportedGrade(grade string) bool {
	_, ok := gradeSubjects[grade]
	return ok
}

// ForGrade returns the subject catalogue for a grade, in curriculum order.
func ForGrade(grade string) []Subject {
	return gradeSubjects[grade]
}

// Lookup resolves a single subject within a grade.
func Lookup(grade, key string) (Subject, bool) {
	for _, s := range gradeSubjects[grade] {
		if s.Key == key {
			return s, true
		}
	}
	return Subject{}, false
}
