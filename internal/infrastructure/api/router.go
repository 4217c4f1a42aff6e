package api

import (
	"net/http"

	appmiddleware "webflow-mirror-layer/internal/infrastructure/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig bundles the handlers and cross-cutting settings the router
// needs.
type RouterConfig struct {
	Auth       *AuthHandler
	Webflow    *WebflowHandler
	Dashboard  *DashboardHandler
	JWTSecret  string
	AppURL     string
	SwaggerURL string
}

// NewRouter wires all routes with the shared middleware stack.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AppURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	if cfg.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))
		r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			http.ServeFile(w, r, "./docs/swagger.json")
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.Auth.Register)
			r.Post("/verify", cfg.Auth.VerifyEmail)
			r.Post("/login", cfg.Auth.Login)
			r.Post("/password/forgot", cfg.Auth.ForgotPassword)
			r.Post("/password/reset", cfg.Auth.ResetPassword)
		})

		// The connect redirect and the provider callback run outside the
		// session. The state value carries the user binding.
		r.Get("/webflow/connect/{userId}", cfg.Webflow.Connect)
		r.Get("/webflow/oauth/callback", cfg.Webflow.Callback)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(cfg.JWTSecret))

			r.Get("/dashboard", cfg.Dashboard.Get)

			r.Route("/webflow", func(r chi.Router) {
				r.Post("/sync", cfg.Webflow.SyncAll)
				r.Post("/sync/sites", cfg.Webflow.SyncSites)

				r.Route("/sites/{siteId}", func(r chi.Router) {
					r.Post("/collections/sync", cfg.Webflow.SyncCollections)
					r.Post("/items/sync", cfg.Webflow.SyncItems)
					r.Post("/products/sync", cfg.Webflow.SyncProducts)
					r.Post("/pages/sync", cfg.Webflow.SyncPages)
					r.Get("/collections/count", cfg.Webflow.CountCollections)
					r.Get("/items/count", cfg.Webflow.CountItems)
					r.Get("/products/count", cfg.Webflow.CountProducts)
				})
			})
		})
	})

	return r
}
