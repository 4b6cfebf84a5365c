package http

import (
	"net/http"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/pkg/crmsdk"
	"github.com/SGK112/CRM-sub005/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Create Invitation
//	@Description	Invite an email into the caller's workspace. Returns the existing invitation when one is still active for that email.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.CreateInvitationRequest	true	"Invitation request"
//	@Success		201		{object}	crmsdk.Invitation
//	@Failure		400		{object}	crmsdk.ValidationErrorResponse	"invalid fields"
//	@Failure		400		{object}	crmsdk.ErrorResponse			"already a member"
//	@Failure		401		{object}	crmsdk.ErrorResponse
//	@Failure		403		{object}	crmsdk.ErrorResponse	"seat limit reached or insufficient scope"
//	@Security		BearerAuth
//	@Router			/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crmsdk.CreateInvitationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteValidationError(w, "validation failed", map[string]string{
			"role": "role must be one of owner, admin, sales_associate, project_manager, team_member, client",
		})
		return
	}

	inv, err := h.InvitationService.Create(ctx, service.CreateInvitationInput{
		Email:       req.Email,
		Role:        role,
		TTLHours:    req.TTLHours,
		WorkspaceID: httpx.WorkspaceIDFromCtx(ctx),
		CreatedBy:   httpx.UserIDFromCtx(ctx),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitation(inv))
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	List every invitation of the caller's workspace, newest first.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{array}		crmsdk.Invitation
//	@Failure		401	{object}	crmsdk.ErrorResponse
//	@Failure		403	{object}	crmsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invs, err := h.InvitationService.List(ctx, httpx.WorkspaceIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]crmsdk.Invitation, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvitation(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation
//	@Description	Delete an invitation of the caller's workspace.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	crmsdk.SuccessResponse
//	@Failure		401	{object}	crmsdk.ErrorResponse
//	@Failure		403	{object}	crmsdk.ErrorResponse
//	@Failure		404	{object}	crmsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/invitations/{id} [delete].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.InvitationService.Revoke(ctx, httpx.WorkspaceIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, crmsdk.SuccessResponse{Success: true})
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Redeem an invitation token. An email that already has an account in another workspace keeps its credentials, otherwise a password is required.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.AcceptInvitationRequest	true	"Acceptance request"
//	@Success		200		{object}	crmsdk.SuccessResponse
//	@Failure		400		{object}	crmsdk.ErrorResponse	"already accepted, expired, already joined or password missing"
//	@Failure		403		{object}	crmsdk.ErrorResponse	"seat limit reached"
//	@Failure		404		{object}	crmsdk.ErrorResponse	"invalid invitation token"
//	@Failure		429		{object}	crmsdk.ErrorResponse
//	@Router			/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req crmsdk.AcceptInvitationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Token == "" {
		httpx.WriteValidationError(w, "validation failed", map[string]string{"token": "token is required"})
		return
	}

	err := h.InvitationService.Accept(r.Context(), service.AcceptInvitationInput{
		Token:     req.Token,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, crmsdk.SuccessResponse{Success: true})
}

func toInvitation(inv domain.Invitation) crmsdk.Invitation {
	return crmsdk.Invitation{
		ID:          inv.ID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		WorkspaceID: inv.WorkspaceID,
		Token:       inv.Token,
		ExpiresAt:   inv.ExpiresAt,
		AcceptedAt:  inv.AcceptedAt,
		CreatedBy:   inv.CreatedBy,
		CreatedAt:   inv.CreatedAt,
	}
}
