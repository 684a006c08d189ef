package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

type SecretsHandler struct {
	Account     string
	SetToken    func(account, token string) error
	DeleteToken func(account string) error
	Logger      *zap.Logger
}

// SetAPIToken stores the monitor token in the OS keychain. The remote client
// resolves the token per request, so no restart is needed.
func (h SecretsHandler) SetAPIToken(w http.ResponseWriter, r *http.Request) {
	if !isLocal(r) {
		WriteError(w, r, http.StatusForbidden, codeForbidden, "forbidden")
		return
	}

	var req setTokenReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, codeBadRequest, "invalid JSON")
		return
	}
	if err := h.SetToken(h.Account, req.Token); err != nil {
		WriteError(w, r, http.StatusBadRequest, codeTokenRejected, "failed to store token: "+err.Error())
		return
	}
	h.Logger.Info("monitor API token stored", zap.String("account", h.Account))
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteAPIToken(w http.ResponseWriter, r *http.Request) {
	if !isLocal(r) {
		WriteError(w, r, http.StatusForbidden, codeForbidden, "forbidden")
		return
	}
	if err := h.DeleteToken(h.Account); err != nil {
		WriteError(w, r, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
