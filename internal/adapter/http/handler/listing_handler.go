package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

type ListingHandler struct {
	listings ListingService
	reports  ReportService
	logger   *logger.Logger
}

func NewListingHandler(listings ListingService, reports ReportService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, reports: reports, logger: log.Named("ListingHandler")}
}

func (h *ListingHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitListingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	in := usecase.SubmitInput{
		Book: domain.Book{
			Title:       req.Title,
			Author:      req.Author,
			Condition:   req.Condition,
			Price:       req.Price,
			Description: req.Description,
			Image:       req.Image,
			Province:    req.Province,
			District:    req.District,
		},
		ContactInfo: req.ContactInfo,
		CategoryIDs: req.CategoryIDs,
	}
	l, err := h.listings.Submit(r.Context(), middleware.ViewerFrom(r.Context()), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toListingResponse(l))
}

func (h *ListingHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var req editListingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	l, err := h.listings.EditContent(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponse(l))
}

func (h *ListingHandler) HandleMarkSold(w http.ResponseWriter, r *http.Request) {
	l, err := h.listings.MarkSold(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponse(l))
}

func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.listings.Delete(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	v, err := h.listings.GetListing(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingViewResponse(*v))
}

func (h *ListingHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minPrice, err := queryFloat(r, "min_price")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	maxPrice, err := queryFloat(r, "max_price")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	filter := domain.ListingFilter{
		Query:      q.Get("q"),
		Author:     q.Get("author"),
		Province:   q.Get("province"),
		District:   q.Get("district"),
		CategoryID: q.Get("category_id"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Page:       queryInt32(r, "page"),
		Limit:      queryInt32(r, "limit"),
	}
	filter.Normalize()
	views, total, err := h.listings.SearchListings(r.Context(), middleware.ViewerFrom(r.Context()), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pageResponse{Items: toListingViewResponses(views), Total: total, Page: filter.Page, Limit: filter.Limit})
}

func (h *ListingHandler) HandleByProvince(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	views, total, err := h.listings.ListByProvince(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "province"), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pageResponse{Items: toListingViewResponses(views), Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *ListingHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	views, total, err := h.listings.MyListings(r.Context(), middleware.ViewerFrom(r.Context()), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pageResponse{Items: toListingViewResponses(views), Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *ListingHandler) HandleFileReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	rep, err := h.reports.FileReport(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toReportResponse(rep))
}
