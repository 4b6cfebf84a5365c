package http

import (
	"net/http"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/pkg/crmsdk"
	"github.com/SGK112/CRM-sub005/pkg/httpx"
)

type ProvisionHandler struct {
	ProvisioningService *service.ProvisioningService
}

// ServeHTTP godoc
//
//	@Summary		Provision Workspace
//	@Description	Create a workspace and its owner. Only available when the service runs with CRM_PROVISIONING_TOKEN set.
//	@Tags			Workspaces
//	@Accept			json
//	@Produce		json
//	@Param			X-Provisioning-Token	header		string					true	"Provisioning token"
//	@Param			request					body		crmsdk.ProvisionRequest	true	"Workspace and owner"
//	@Success		201						{object}	crmsdk.ProvisionResponse
//	@Failure		400						{object}	crmsdk.ValidationErrorResponse
//	@Failure		401						{object}	crmsdk.ErrorResponse
//	@Failure		404						{object}	crmsdk.ErrorResponse	"provisioning disabled"
//	@Router			/workspaces [post].
func (h *ProvisionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ProvisioningService == nil || !h.ProvisioningService.Enabled() {
		writeServiceError(w, r, service.ErrProvisioningDisabled)
		return
	}

	var req crmsdk.ProvisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.ProvisioningService.Provision(r.Context(), r.Header.Get(crmsdk.ProvisioningTokenHeader), service.ProvisionInput{
		Name:           req.Name,
		Plan:           domain.Plan(req.Plan),
		SeatLimit:      req.SeatLimit,
		OwnerEmail:     req.Owner.Email,
		OwnerPassword:  req.Owner.Password,
		OwnerFirstName: req.Owner.FirstName,
		OwnerLastName:  req.Owner.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, crmsdk.ProvisionResponse{
		WorkspaceID: res.WorkspaceID,
		OwnerUserID: res.OwnerUserID,
	})
}

type UsageHandler struct {
	UsageService *service.UsageService
}

// ServeHTTP godoc
//
//	@Summary		Seat Usage
//	@Description	Active seats, seat limit and pending invitations of the caller's workspace. A seat_limit of 0 means unlimited.
//	@Tags			Workspaces
//	@Produce		json
//	@Success		200	{object}	crmsdk.UsageResponse
//	@Failure		401	{object}	crmsdk.ErrorResponse
//	@Failure		403	{object}	crmsdk.ErrorResponse
//	@Failure		404	{object}	crmsdk.ErrorResponse	"workspace not found"
//	@Security		BearerAuth
//	@Router			/workspace/usage [get].
func (h *UsageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	usage, err := h.UsageService.Usage(r.Context(), httpx.WorkspaceIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, crmsdk.UsageResponse{
		WorkspaceID:        usage.WorkspaceID,
		Plan:               string(usage.Plan),
		SeatLimit:          usage.SeatLimit,
		ActiveSeats:        usage.ActiveSeats,
		PendingInvitations: usage.PendingInvitations,
	})
}
