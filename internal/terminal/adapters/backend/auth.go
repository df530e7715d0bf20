package backend

import (
	"context"
	"net/http"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/api"
)

// Пути эндпоинтов аутентификации.
const (
	PathLogin          = "/auth/login"
	PathRefresh        = "/auth/refresh"
	PathMe             = "/auth/me"
	PathLogout         = "/auth/logout"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathChangePassword = "/auth/change-password"
)

var _ api.AuthAPI = (*Client)(nil)

type empty struct{}

func (c *Client) Login(ctx context.Context, username, password string) (*entities.TokenPair, error) {
	var pair entities.TokenPair
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathLogin,
		body: map[string]string{
			"username": username,
			"password": password,
		},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Refresh передает refresh-токен явным заголовком Authorization,
// который транспорт не перезаписывает.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*entities.TokenPair, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+refreshToken)

	var pair entities.TokenPair
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathRefresh,
		body:   empty{},
		header: header,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) Me(ctx context.Context) (*api.MeResponse, error) {
	var me api.MeResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: PathMe, body: empty{}}, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: PathLogout, body: empty{}}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   PathForgotPassword,
		body:   map[string]string{"email": email},
	}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   PathResetPassword,
		body:   map[string]string{"token": token, "newPassword": newPassword},
	}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   PathChangePassword,
		body:   map[string]string{"oldPassword": oldPassword, "newPassword": newPassword},
	}, nil)
}
