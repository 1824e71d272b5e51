package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/repository"
	"github.com/execsgroup/zowehlife-sub005/internal/service"
	"github.com/execsgroup/zowehlife-sub005/internal/status"
)

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// ministryID reads the ministry scope set by the auth middleware seam.
func ministryID(r *http.Request) string {
	return r.Header.Get("X-Ministry-ID")
}

// writeError maps service/repo errors onto HTTP statuses.
// UnknownStatusError is a data-integrity bug: logged loudly, 500,
// never rewritten into something friendlier.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var unknown *status.UnknownStatusError
	if errors.As(err, &unknown) {
		logger.Error("Status table integrity violation", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("internal data error"))
		return
	}

	var invalid *status.InvalidOutcomeError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	if errors.Is(err, service.ErrBadRequest) {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}

	logger.Error("Request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, Fail("internal error"))
}
