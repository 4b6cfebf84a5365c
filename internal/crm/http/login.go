package http

import (
	"net/http"
	"strings"

	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/pkg/crmsdk"
	"github.com/SGK112/CRM-sub005/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Password Login
//	@Description	Exchange email and password for an access token bound to one workspace membership.
//	@Description	When the email belongs to several workspaces, workspaceId selects one; without it the call fails with 409.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.LoginRequest	true	"Login request"
//	@Success		200		{object}	crmsdk.LoginResponse
//	@Failure		400		{object}	crmsdk.ValidationErrorResponse
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid email or password"
//	@Failure		409		{object}	crmsdk.ErrorResponse	"workspace selection required"
//	@Failure		429		{object}	crmsdk.ErrorResponse
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req crmsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), service.LoginInput{
		Email:       req.Email,
		Password:    req.Password,
		WorkspaceID: req.WorkspaceID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, crmsdk.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   res.ExpiresIn,
		Scope:       strings.Join(res.Role.Scopes(), " "),
		WorkspaceID: res.WorkspaceID,
		UserID:      res.UserID,
		Role:        string(res.Role),
	})
}
