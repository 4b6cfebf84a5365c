package crmsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Permission scopes checked client-side before a call is made.
const (
	ScopeInvitationsCreate = "invitations.create"
	ScopeInvitationsRead   = "invitations.read"
	ScopeInvitationsDelete = "invitations.delete"
)

// CreateInvitation invites an email into the session's workspace. An
// active invitation for the same email is returned as is.
// Requires: invitations.create scope
func (s *Session) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*Invitation, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/invitations", body, headers, ScopeInvitationsCreate)
	if err != nil {
		return nil, err
	}

	var inv Invitation
	if err := decodeJSON(resp, &inv, http.StatusCreated); err != nil {
		return nil, err
	}

	return &inv, nil
}

// ListInvitations returns the workspace invitations, newest first.
// Requires: invitations.read scope
func (s *Session) ListInvitations(ctx context.Context) ([]Invitation, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/invitations", nil, nil, ScopeInvitationsRead)
	if err != nil {
		return nil, err
	}

	var invs []Invitation
	if err := decodeJSON(resp, &invs, http.StatusOK); err != nil {
		return nil, err
	}

	return invs, nil
}

// RevokeInvitation deletes an invitation of the session's workspace.
// Requires: invitations.delete scope
func (s *Session) RevokeInvitation(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/invitations/"+url.PathEscape(id), nil, nil, ScopeInvitationsDelete)
	if err != nil {
		return err
	}

	var out SuccessResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// Usage reports seat usage of the session's workspace.
// Requires: invitations.read scope
func (s *Session) Usage(ctx context.Context) (*UsageResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/workspace/usage", nil, nil, ScopeInvitationsRead)
	if err != nil {
		return nil, err
	}

	var usage UsageResponse
	if err := decodeJSON(resp, &usage, http.StatusOK); err != nil {
		return nil, err
	}

	return &usage, nil
}
