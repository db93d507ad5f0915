package baas

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// User is the backend's view of an authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Session is returned by a successful password sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		Post("/auth/v1/token")
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.IsError() {
		apiErr := apiError(resp)
		if resp.StatusCode() == 400 {
			// invalid credentials come back as 400 invalid_grant
			return nil, &APIError{Status: 401, Message: apiErr.Message}
		}
		c.logger.Warn("baas sign in failed", zap.Int("status", resp.StatusCode()))
		return nil, apiErr
	}
	return &session, nil
}

// GetUser resolves the account behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&user).
		Get("/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return &user, nil
}
