package mail

import "fmt"

const (
	ResetSubject = "Password Reset Request"
	MFASubject   = "Your Verification Code"
)

// ResetBody builds the password reset email. The link points at the
// frontend reset page with the raw token as a query parameter.
func ResetBody(username, baseURL, token string) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"We received a request to reset your password. Click the link below to choose a new one:\n\n"+
			"%s/reset-password?token=%s\n\n"+
			"This link expires in 15 minutes. If you did not request a password reset, you can safely ignore this email.\n\n"+
			"Best regards,\nLIKESTEM",
		username, baseURL, token,
	)
}

// MFABody builds the login verification code email.
func MFABody(username, code string) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your verification code is: %s\n\n"+
			"Enter this code to complete your sign in. If you did not attempt to sign in, please change your password.\n\n"+
			"Best regards,\nLIKESTEM",
		username, code,
	)
}
