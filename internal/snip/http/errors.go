package http

import (
	"net/http"

	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
	"github.com/aussiebroadwan/snip/pkg/snipsdk"
)

// writeError maps a service error to its status code. Messages of
// classified errors are safe to return; causes are only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch errx.KindOf(err) {
	case errx.KindValidation:
		httpx.WriteError(w, http.StatusBadRequest, snipsdk.ErrorCodeInvalidRequest, errx.MessageOf(err))
	case errx.KindNotFound:
		httpx.WriteError(w, http.StatusNotFound, snipsdk.ErrorCodeNotFound, errx.MessageOf(err))
	case errx.KindConflict:
		httpx.WriteError(w, http.StatusConflict, snipsdk.ErrorCodeConflict, errx.MessageOf(err))
	case errx.KindUnauthorized:
		w.Header().Set("WWW-Authenticate", `Bearer realm="snip"`)
		httpx.WriteError(w, http.StatusUnauthorized, snipsdk.ErrorCodeUnauthorized, errx.MessageOf(err))
	case errx.KindUpstream:
		log.Error("upstream failure", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, snipsdk.ErrorCodeServerError, errx.MessageOf(err))
	default:
		log.Error("unclassified error", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, snipsdk.ErrorCodeServerError, "internal error")
	}
}
