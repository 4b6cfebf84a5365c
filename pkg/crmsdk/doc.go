/*
Package crmsdk provides a client SDK for the CRM invitation service.

# Client vs Session

  - Client: public endpoints (login, invitation acceptance, provisioning,
    health, JWKS) and the factory for Sessions
  - Session: bearer-authenticated calls scoped to one workspace

Provision a workspace, log in as its owner and invite a member:

	client := crmsdk.NewClient("https://crm.example.com")

	ws, err := client.Provision(ctx, provisioningToken, crmsdk.ProvisionRequest{
		Name:  "Acme Remodeling",
		Plan:  "starter",
		Owner: crmsdk.ProvisionOwner{Email: "owner@acme.com", Password: "changeme1"},
	})

	session, err := client.Authenticate(ctx, crmsdk.LoginRequest{
		Email:    "owner@acme.com",
		Password: "changeme1",
	})

	inv, err := session.CreateInvitation(ctx, crmsdk.CreateInvitationRequest{
		Email: "new@acme.com",
		Role:  "team_member",
	})

The invitee redeems the token without a session:

	err = client.AcceptInvitation(ctx, crmsdk.AcceptInvitationRequest{
		Token:    inv.Token,
		Password: "abc12345",
	})

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP
status, the error code and, for validation failures, per-field details:

	var apiErr *crmsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		// seat limit reached
	}

# Thread Safety

Clients and Sessions are safe for concurrent use.
*/
package crmsdk
