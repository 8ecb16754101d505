package mail

import "fmt"

// Dispatcher sends account lifecycle mails. The auth service only hands over
// the raw token; building and delivering the message happens here.
type Dispatcher interface {
	SendVerification(to, name, token string) error
	SendPasswordReset(to, name, token string) error
}

type TokenDispatcher struct {
	mailer Mailer
	from   string
}

func NewDispatcher(mailer Mailer, from string) *TokenDispatcher {
	return &TokenDispatcher{mailer: mailer, from: from}
}

func (d *TokenDispatcher) SendVerification(to, name, token string) error {
	return d.mailer.SendMail(&Email{
		Subject: "Verify your Kalvihub account",
		Body: fmt.Sprintf("Hi %s,\n\nWelcome to Kalvihub. Use this code to verify your email address:\n\n%s\n\nIf you did not sign up, you can ignore this mail.",
			name, token),
		From: d.from,
		To:   []string{to},
	})
}

func (d *TokenDispatcher) SendPasswordReset(to, name, token string) error {
	return d.mailer.SendMail(&Email{
		Subject: "Reset your Kalvihub password",
		Body: fmt.Sprintf("Hi %s,\n\nUse this code to reset your password. It expires in one hour:\n\n%s\n\nIf you did not request a reset, you can ignore this mail.",
			name, token),
		From: d.from,
		To:   []string{to},
	})
}

// NoopDispatcher drops all mail. Used in tests and when Mailgun is not
// configured.
type NoopDispatcher struct{}

func (NoopDispatcher) SendVerification(string, string, string) error  { return nil }
func (NoopDispatcher) SendPasswordReset(string, string, string) error { return nil }
