package auth

import (
	"testing"
)

func TestEvaluatePassword(t *testing.T) {
	testCases := []struct {
		password string
		valid    bool
		reasons  int
	}{
		{"Abcd1234", true, 0},
		{"xK9mPq2vLt", true, 0},
		{"Ab1", false, 1},
		{"abcd1234", false, 1},
		{"ABCD1234", false, 1},
		{"Abcdefgh", false, 1},
		{"abcdefgh", false, 2},
		{"abc", false, 3},
		{"", false, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			result := EvaluatePassword(tc.password)
			if result.Valid != tc.valid {
				t.Errorf("EvaluatePassword(%q).Valid = %v; want %v", tc.password, result.Valid, tc.valid)
			}
			if len(result.Reasons) != tc.reasons {
				t.Errorf("EvaluatePassword(%q) = %d reasons %v; want %d", tc.password, len(result.Reasons), result.Reasons, tc.reasons)
			}
		})
	}
}
