package crmsdk

import (
	"context"
	"net/http"
)

// Login exchanges email and password for a workspace-scoped access token.
// A 409 APIError means the email has several memberships and
// req.WorkspaceID must be set.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, headers)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &loginResp, nil
}
