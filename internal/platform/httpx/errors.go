package httpx

import (
	"errors"
	"net/http"

	"github.com/meridian-erp/meridian/internal/authz"
	"github.com/meridian-erp/meridian/internal/shared"
)

// RespondError maps domain errors to RFC7807 responses. Authorization
// failures keep their distinct statuses so the dispatch client can tell a
// retryable store outage (502) from a durable denial (401/403).
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		Problem(w, http.StatusUnauthorized, "Unauthenticated", "no principal identifier in call arguments")
	case errors.Is(err, authz.ErrUnknownPrincipal):
		Problem(w, http.StatusUnauthorized, "Unknown Principal", "principal does not resolve to a role")
	case errors.Is(err, authz.ErrPermissionDenied):
		Problem(w, http.StatusForbidden, "Permission Denied", deniedDetail(err))
	case errors.Is(err, authz.ErrStoreUnavailable):
		Problem(w, http.StatusBadGateway, "Identity Store Unavailable", "role resolution failed, retry the call")
	case errors.Is(err, shared.ErrUnknownOperation):
		Problem(w, http.StatusNotFound, "Unknown Operation", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrInvalidArgument):
		Problem(w, http.StatusBadRequest, "Invalid Argument", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func deniedDetail(err error) string {
	var denied *authz.DeniedError
	if errors.As(err, &denied) {
		return denied.Error()
	}
	return "role lacks the required permission"
}
