package authsdk

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number,omitempty"`
	Role          string `json:"role,omitempty"` // defaults to Customer
}

// RegisterResponse echoes the created account's public profile.
type RegisterResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries either a session token or the MFA-pending marker,
// never both.
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	MFARequired bool   `json:"mfa_required,omitempty"`
}

// MFAVerifyRequest is the body for POST /v1/auth/mfa/verify.
type MFAVerifyRequest struct {
	Username string `json:"username"`
	MFAToken string `json:"mfa_token"`
}

// MFAVerifyResponse reports whether the submitted code matched.
type MFAVerifyResponse struct {
	Verified bool `json:"verified"`
}

// ForgotPasswordRequest is the body for POST /v1/auth/password/forgot.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body for POST /v1/auth/password/reset.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// UserInfoResponse is the authenticated user's public profile.
type UserInfoResponse struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	ContactNumber string   `json:"contact_number,omitempty"`
	Roles         []string `json:"roles"`
	MFAEnabled    bool     `json:"mfa_enabled"`
}

// ErrorResponse is the error envelope every endpoint uses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthChecks reports per-dependency health for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
