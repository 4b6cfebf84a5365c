package crmsdk

import (
	"context"
	"net/http"
)

// AcceptInvitation redeems an invitation token.
// This is a public endpoint (no authentication required).
func (c *Client) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) error {
	body, headers, err := jsonBody(req)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/invitations/accept", body, headers)
	if err != nil {
		return err
	}

	var out SuccessResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
