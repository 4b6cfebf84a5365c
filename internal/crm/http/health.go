package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/pkg/crmsdk"
	"github.com/SGK112/CRM-sub005/pkg/httpx"
	"github.com/SGK112/CRM-sub005/pkg/jwtx"
)

var errNoSigningKeys = errors.New("no keys loaded")

// pinger is implemented by lock backends that live outside the process.
type pinger interface {
	Ping(ctx context.Context) error
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	crmsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, crmsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the token signer and, when configured, the Redis lock backend
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	crmsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	crmsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	lock pinger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		healthy := true
		probe := func(err error) string {
			if err != nil {
				healthy = false
				return "error: " + err.Error()
			}
			return "ok"
		}

		checks := &crmsdk.HealthChecks{
			Database: probe(st.Ping(ctx)),
			Signer:   probe(signerReady(keys)),
		}
		if lock != nil {
			checks.Lock = probe(lock.Ping(ctx))
		}

		res := crmsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		code := http.StatusOK
		if !healthy {
			res.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, res)
	}
}

func signerReady(keys *jwtx.KeySet) error {
	if !keys.IsReady() {
		return errNoSigningKeys
	}
	return nil
}

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify access tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	crmsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, crmsdk.JWKSResponse(keys.PublicJWKS()))
	}
}
