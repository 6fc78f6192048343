package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lintang-b-s/Navigatorx/pkg/apperr"
)

// writeJSON is the teacher's envelope-write helper (routing.go's
// writeJSON), reauthored here since the retrieved slice didn't include
// its body: marshal v, set the content type, and write the status.
func (api *decodeAPI) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		api.serverError(w, nil, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (api *decodeAPI) writeError(w http.ResponseWriter, status int, code, message string) {
	body, err := json.Marshal(newErrorResponse(code, message))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (api *decodeAPI) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Info("bad request", zap.Error(err))
	api.writeError(w, http.StatusBadRequest, "bad_request", err.Error())
}

func (api *decodeAPI) serverError(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err))
	api.writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// decodeError maps a Decoder.Go failure to a status code, following
// apperr's sentinel codes (spec §7): invalid input is a 400; no
// vicinity, no path and empty reconstruction are a 422, the reference
// could not be matched against the current graph; any other error is a
// 500.
func (api *decodeAPI) decodeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		api.writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, apperr.ErrNoVicinity):
		api.writeError(w, http.StatusUnprocessableEntity, "no_vicinity", err.Error())
	case errors.Is(err, apperr.ErrNoPath):
		api.writeError(w, http.StatusUnprocessableEntity, "no_path", err.Error())
	case errors.Is(err, apperr.ErrEmptyReconstruction):
		api.writeError(w, http.StatusUnprocessableEntity, "empty_reconstruction", err.Error())
	default:
		api.serverError(w, r, err)
	}
}
