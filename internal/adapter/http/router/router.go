package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Listings   *handler.ListingHandler
	Admin      *handler.AdminHandler
	Accounts   *handler.AccountHandler
	Categories *handler.CategoryHandler
	Images     *handler.ImageHandler
}

// New builds the HTTP API. Every request carries a resolved viewer; routes
// are not split into authenticated groups because authorization is decided
// per operation.
func New(h Handlers, tokens middleware.TokenParser, m *metrics.MetricsManager, serviceName string, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(log))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}
	r.Use(middleware.Viewer(tokens, log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		setupAccountRoutes(r, h.Accounts)
		setupListingRoutes(r, h.Listings, h.Images)
		r.Get("/categories", h.Categories.HandleList)
		r.Route("/admin", func(r chi.Router) {
			setupAdminRoutes(r, h.Admin, h.Categories)
		})
	})

	return otelhttp.NewHandler(r, serviceName,
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		}),
	)
}

func setupAccountRoutes(r chi.Router, h *handler.AccountHandler) {
	r.Post("/auth/register", h.HandleRegister)
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/admin/login", h.HandleAdminLogin)

	r.Get("/users/me", h.HandleProfile)
	r.Put("/users/me", h.HandleUpdateProfile)
	r.Put("/users/me/password", h.HandleChangePassword)
}

func setupListingRoutes(r chi.Router, h *handler.ListingHandler, images *handler.ImageHandler) {
	r.Get("/listings", h.HandleSearch)
	r.Post("/listings", h.HandleSubmit)
	r.Get("/listings/{id}", h.HandleGet)
	r.Patch("/listings/{id}", h.HandleEdit)
	r.Delete("/listings/{id}", h.HandleDelete)
	r.Post("/listings/{id}/sold", h.HandleMarkSold)
	r.Post("/listings/{id}/reports", h.HandleFileReport)
	r.Get("/provinces/{province}/listings", h.HandleByProvince)
	r.Get("/my/listings", h.HandleMine)

	r.Post("/images", images.HandleUpload)
}

func setupAdminRoutes(r chi.Router, h *handler.AdminHandler, categories *handler.CategoryHandler) {
	r.Get("/listings", h.HandleListListings)
	r.Patch("/listings/{id}/status", h.HandleModerate)

	r.Get("/accounts", h.HandleListAccounts)
	r.Get("/accounts/{id}", h.HandleGetAccount)
	r.Patch("/accounts/{id}/status", h.HandleSetAccountStatus)
	r.Delete("/accounts/{id}", h.HandleDeleteAccount)

	r.Get("/reports", h.HandleListReports)
	r.Patch("/reports/{id}", h.HandleResolveReport)

	r.Post("/categories", categories.HandleCreate)
	r.Put("/categories/{id}", categories.HandleUpdate)
	r.Delete("/categories/{id}", categories.HandleDelete)
}
