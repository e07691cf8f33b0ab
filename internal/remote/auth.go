package remote

import (
	"context"
	"net/http"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type loginResponse struct {
	envelope
	Token string `json:"MahakalToken"`
}

// Login exchanges admin credentials for a bearer token. It is the only call
// that does not need a session.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	req, err := jsonRequest(http.MethodPost, "/admin/login", nil, body)
	if err != nil {
		return LoginResult{}, err
	}

	var resp loginResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return LoginResult{}, err
	}

	if resp.Token == "" {
		return LoginResult{}, &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Login failed.")}
	}

	return LoginResult{Token: resp.Token, Message: resp.Message}, nil
}

type profileResponse struct {
	envelope
	Admin domain.Admin `json:"admin"`
}

func (c *Client) Profile(ctx context.Context, sess session.Session) (domain.Admin, error) {
	var resp profileResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/profile", sess: &sess}, &resp); err != nil {
		return domain.Admin{}, err
	}

	if resp.failed() {
		return domain.Admin{}, &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Failed to load profile.")}
	}

	return resp.Admin, nil
}
