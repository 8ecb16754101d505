package auth

import "unicode"

// PolicyResult reports every rule a candidate password fails, not just the
// first one.
type PolicyResult struct {
	Valid   bool
	Reasons []string
}

// EvaluatePassword applies the registration password policy. The same rules
// run at registration and at reset-with-new-password.
func EvaluatePassword(password string) PolicyResult {
	var reasons []string

	if len(password) < 8 {
		reasons = append(reasons, "Password must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower {
		reasons = append(reasons, "Password must contain at least one lowercase letter")
	}
	if !hasUpper {
		reasons = append(reasons, "Password must contain at least one uppercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "Password must contain at least one number")
	}

	return PolicyResult{Valid: len(reasons) == 0, Reasons: reasons}
}
