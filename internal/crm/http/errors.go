package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/pkg/crmsdk"
	"github.com/SGK112/CRM-sub005/pkg/httpx"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
)

// writeServiceError maps a service error onto its HTTP status and body.
// Conflicts are 400 like the rest of the business rule failures, except
// the login workspace selection which is 409.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.KindOf(err)

	var status int
	switch kind {
	case service.KindValidation:
		httpx.WriteValidationError(w, err.Error(), service.FieldsOf(err))
		return
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindConflict:
		status = http.StatusBadRequest
		if errors.Is(err, service.ErrWorkspaceSelectionRequired) {
			status = http.StatusConflict
		}
	case service.KindUnauthorized:
		status = http.StatusUnauthorized
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, crmsdk.ErrorCodeServerError, "internal server error")
		return
	}

	httpx.WriteError(w, status, kind.String(), err.Error())
}

// decodeBody reads the JSON body into v and writes a 400 when it cannot.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, crmsdk.ErrorCodeInvalidRequest, err.Error())
		return false
	}
	return true
}
