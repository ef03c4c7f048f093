package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the LIKESTEM authentication service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new auth service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/register", req, "")
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session token. When the account has MFA
// enabled the response carries MFARequired instead of a token; follow up
// with VerifyMFA and Login again once the code is cleared, or treat the
// token-less response as the signal to prompt for the emailed code.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{
		Username: username,
		Password: password,
	}, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyMFA submits the emailed one-time code.
func (c *Client) VerifyMFA(ctx context.Context, username, code string) (bool, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/mfa/verify", MFAVerifyRequest{
		Username: username,
		MFAToken: code,
	}, "")
	if err != nil {
		return false, err
	}

	var out MFAVerifyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.Verified, nil
}

// ForgotPassword asks the service to email a reset link. The service
// accepts the request regardless of whether the address is known.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/password/forgot", ForgotPasswordRequest{Email: email}, "")
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// ResetPassword redeems an emailed reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/password/reset", ResetPasswordRequest{
		Token:       token,
		NewPassword: newPassword,
	}, "")
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// UserInfo fetches the profile behind the session token.
func (c *Client) UserInfo(ctx context.Context, token string) (*UserInfoResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/userinfo", nil, token)
	if err != nil {
		return nil, err
	}

	var out UserInfoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnableMFA turns on email-code MFA for the authenticated account.
func (c *Client) EnableMFA(ctx context.Context, token string) error {
	resp, err := c.postJSON(ctx, "/v1/mfa/enable", nil, token)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// DisableMFA turns off email-code MFA for the authenticated account.
func (c *Client) DisableMFA(ctx context.Context, token string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/mfa", nil, token)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready to take traffic.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
