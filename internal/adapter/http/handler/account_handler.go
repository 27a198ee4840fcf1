package handler

import (
	"context"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
)

type AccountHandler struct {
	accounts AccountService
	logger   *logger.Logger
}

func NewAccountHandler(accounts AccountService, log *logger.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: log.Named("AccountHandler")}
}

func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	a, token, err := h.accounts.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Province: req.Province,
		District: req.District,
		Ward:     req.Ward,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, authResponse{Token: token, Account: toAccountResponse(a)})
}

func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.accounts.Login)
}

func (h *AccountHandler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.accounts.AdminLogin)
}

type loginFunc func(ctx context.Context, email, password string) (*domain.Account, string, error)

func (h *AccountHandler) login(w http.ResponseWriter, r *http.Request, fn loginFunc) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	a, token, err := fn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, authResponse{Token: token, Account: toAccountResponse(a)})
}

func (h *AccountHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	a, err := h.accounts.Profile(r.Context(), middleware.ViewerFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	a, err := h.accounts.UpdateProfile(r.Context(), middleware.ViewerFrom(r.Context()), domain.ProfilePatch{
		Name:     req.Name,
		Phone:    req.Phone,
		Province: req.Province,
		District: req.District,
		Ward:     req.Ward,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.accounts.ChangePassword(r.Context(), middleware.ViewerFrom(r.Context()), req.OldPassword, req.NewPassword); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
