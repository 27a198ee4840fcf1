package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

// AdminHandler serves the moderation console. Role checks happen in the usecases.
type AdminHandler struct {
	moderation ModerationService
	reports    ReportService
	logger     *logger.Logger
}

func NewAdminHandler(moderation ModerationService, reports ReportService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{moderation: moderation, reports: reports, logger: log.Named("AdminHandler")}
}

func (h *AdminHandler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	views, total, err := h.moderation.ListListings(r.Context(), middleware.ViewerFrom(r.Context()), r.URL.Query().Get("status"), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pageResponse{Items: toListingViewResponses(views), Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *AdminHandler) HandleModerate(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	l, err := h.moderation.Moderate(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponse(l))
}

func (h *AdminHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	accounts, total, err := h.moderation.ListAccounts(r.Context(), middleware.ViewerFrom(r.Context()), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pageResponse{Items: toAccountResponses(accounts), Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *AdminHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := h.moderation.GetAccount(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toAccountResponse(a))
}

func (h *AdminHandler) HandleSetAccountStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	a, err := h.moderation.SetAccountStatus(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toAccountResponse(a))
}

func (h *AdminHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.moderation.DeleteAccount(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	reports, total, err := h.reports.ListReports(r.Context(), middleware.ViewerFrom(r.Context()), r.URL.Query().Get("status"), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	items := make([]reportResponse, 0, len(reports))
	for _, rep := range reports {
		items = append(items, toReportResponse(rep))
	}
	writeJSON(w, h.logger, http.StatusOK, pageResponse{Items: items, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *AdminHandler) HandleResolveReport(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	rep, err := h.reports.ResolveReport(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toReportResponse(rep))
}

func toAccountResponses(accounts []*domain.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}
