package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categories CategoryService
	logger     *logger.Logger
}

func NewCategoryHandler(categories CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: log.Named("CategoryHandler")}
}

func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	counts, err := h.categories.ListCategories(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	out := make([]categoryResponse, 0, len(counts))
	for _, c := range counts {
		resp := toCategoryResponse(c.Category)
		n := c.Listings
		resp.Listings = &n
		out = append(out, resp)
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	c, err := h.categories.CreateCategory(r.Context(), middleware.ViewerFrom(r.Context()), req.Name, req.Description)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toCategoryResponse(*c))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	c, err := h.categories.UpdateCategory(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), req.Name, req.Description)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toCategoryResponse(*c))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteCategory(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
