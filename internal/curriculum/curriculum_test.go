package curriculum

import "testing"

func TestLookup(t *testing.T) {
	testCases := []struct {
		grade       string
		key         string
		found       bool
		units       int
		assessments int
	}{
		{"10", "tamil", true, 10, 30},
		{"10", "english", true, 12, 36},
		{"10", "mathematics", true, 8, 40},
		{"10", "science", true, 16, 48},
		{"10", "social", true, 24, 72},
		{"10", "history", false, 0, 0},
		{"9", "tamil", false, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.grade+"/"+tc.key, func(t *testing.T) {
			s, ok := Lookup(tc.grade, tc.key)
			if ok != tc.found {
				t.Fatalf("Lookup(%q, %q) found = %v; want %v", tc.grade, tc.key, ok, tc.found)
			}
			if s.TotalUnits != tc.units || s.TotalAssessments != tc.assessments {
				t.Errorf("Lookup(%q, %q) = %d units, %d assessments; want %d, %d",
					tc.grade, tc.key, s.TotalUnits, s.TotalAssessments, tc.units, tc.assessments)
			}
		})
	}
}

func TestSupportedGrade(t *testing.T) {
	if !SupportedGrade("10") {
		t.Error("grade 10 should be supported")
	}
	if SupportedGrade("11") {
		t.Error("grade 11 should not be supported")
	}
	if len(ForGrade("10")) != 5 {
		t.Errorf("ForGrade(10) = %d subjects; want 5", len(ForGrade("10")))
	}
}
