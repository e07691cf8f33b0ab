package remote

import (
	"context"
	"net/http"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

type usersResponse struct {
	envelope
	Users []domain.User `json:"users"`
}

func (c *Client) ListUsers(ctx context.Context, sess session.Session) ([]domain.User, error) {
	var resp usersResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/payment/getAllUsers", sess: &sess}, &resp); err != nil {
		return nil, err
	}

	if resp.failed() {
		return nil, &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Failed to load users.")}
	}

	if resp.Users == nil {
		return []domain.User{}, nil
	}
	return resp.Users, nil
}
