package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type pageResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int32       `json:"page"`
	Limit int32       `json:"limit"`
}

// errorKinds is checked in order; the first match decides the response.
var errorKinds = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid_transition"},
	{domain.ErrImmutable, http.StatusUnprocessableEntity, "immutable"},
	{domain.ErrAccountNotActive, http.StatusUnprocessableEntity, "account_not_active"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
	{domain.ErrDuplicateName, http.StatusConflict, "duplicate_name"},
}

// StatusFor maps a usecase error to its HTTP status and machine-readable code.
func StatusFor(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError hides internal error text from clients.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	status, code := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", zap.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, log, status, errorResponse{Error: msg, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func queryInt32(r *http.Request, key string) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
	}
	return v, nil
}

func pageFrom(r *http.Request) domain.Page {
	page, limit := domain.NormalizePage(queryInt32(r, "page"), queryInt32(r, "limit"))
	return domain.Page{Page: page, Limit: limit}
}
