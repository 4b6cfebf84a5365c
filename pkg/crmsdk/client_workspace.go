package crmsdk

import (
	"context"
	"net/http"
)

// ProvisioningTokenHeader carries the provisioning secret.
const ProvisioningTokenHeader = "X-Provisioning-Token"

// Provision creates a workspace and its owner. The service answers 404
// when provisioning is not enabled.
func (c *Client) Provision(ctx context.Context, token string, req ProvisionRequest) (*ProvisionResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	headers[ProvisioningTokenHeader] = token

	resp, err := c.doRequest(ctx, http.MethodPost, "/workspaces", body, headers)
	if err != nil {
		return nil, err
	}

	var out ProvisionResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}
