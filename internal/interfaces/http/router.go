package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ipede/app-admin-service/internal/application"
	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/ipede/app-admin-service/internal/infrastructure/config"
	"github.com/ipede/app-admin-service/internal/infrastructure/database"
	"github.com/ipede/app-admin-service/internal/infrastructure/idp"
	"github.com/ipede/app-admin-service/internal/infrastructure/repository"
	"github.com/ipede/app-admin-service/internal/interfaces/http/handlers"
	"github.com/ipede/app-admin-service/internal/interfaces/http/middleware/auth"
	"github.com/ipede/app-admin-service/internal/interfaces/http/middleware/ratelimit"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Router struct {
	router *chi.Mux
	db     *database.Postgres
}

func NewRouter(
	db *database.Postgres,
	cfg *config.Config,
	publisher domain.NotificationPublisher,
	logger *zap.Logger,
) *Router {
	uowFactory := repository.NewUnitOfWorkFactory(db, logger)
	identityProvider := idp.NewManagementClient(cfg, logger)
	authMiddleware := auth.NewAuthMiddleware(cfg.JWTSecret, logger)

	appService := application.NewAppService(uowFactory, logger)
	clientService := application.NewClientService(uowFactory, identityProvider, logger)
	grantService := application.NewGrantService(uowFactory, identityProvider, logger)
	resourceServerService := application.NewResourceServerService(uowFactory, identityProvider, logger)
	productService := application.NewProductService(uowFactory, publisher, logger)
	productClientService := application.NewProductClientService(uowFactory, identityProvider, logger)

	// Initialize handlers
	appHandler := handlers.NewAppHandler(appService, logger)
	clientHandler := handlers.NewClientHandler(clientService, logger)
	grantHandler := handlers.NewGrantHandler(grantService, logger)
	resourceServerHandler := handlers.NewResourceServerHandler(resourceServerService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	productClientHandler := handlers.NewProductClientHandler(productClientService, logger)

	// Create router with middleware
	router := createRouter()

	rateLimiter := ratelimit.NewRateLimiter(100, 200, 3*time.Minute)
	router.Use(rateLimiter.Middleware)

	// Health check endpoints
	router.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			// Check database connection
			if err := db.Ping(); err != nil {
				logger.Error("Database health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Database connection failed"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		})

		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Alive"))
		})
	})

	// Swagger UI configuration
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
		httpSwagger.DeepLinking(true),
		httpSwagger.PersistAuthorization(true),
	))

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "docs/swagger.json")
	})

	// API routes without version in URL
	router.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticator)

		r.Post("/apps", appHandler.Create)
		r.Get("/apps", appHandler.List)
		r.Get("/apps/{id}", appHandler.Get)
		r.Put("/apps/{id}", appHandler.Update)
		r.Delete("/apps/{id}", appHandler.Delete)

		r.Post("/clients", clientHandler.Create)
		r.Get("/clients", clientHandler.List)
		r.Get("/clients/{id}", clientHandler.Get)
		r.Put("/clients/{id}", clientHandler.Update)
		r.Delete("/clients/{id}", clientHandler.Delete)

		r.Post("/grants", grantHandler.Create)
		r.Get("/grants", grantHandler.List)
		r.Get("/grants/{id}", grantHandler.Get)
		r.Delete("/grants/{id}", grantHandler.Delete)

		r.Post("/resource-servers", resourceServerHandler.Create)
		r.Get("/resource-servers", resourceServerHandler.List)
		r.Get("/resource-servers/{id}", resourceServerHandler.Get)
		r.Put("/resource-servers/{id}", resourceServerHandler.Update)
		r.Delete("/resource-servers/{id}", resourceServerHandler.Delete)

		r.Post("/products", productHandler.Create)
		r.Get("/products", productHandler.List)
		r.Get("/products/{id}", productHandler.Get)
		r.Put("/products/{id}", productHandler.Update)
		r.Delete("/products/{id}", productHandler.Delete)

		r.Post("/product-clients", productClientHandler.Create)
		r.Get("/product-clients", productClientHandler.List)
		r.Get("/product-clients/{id}", productClientHandler.Get)
		r.Put("/product-clients/{id}", productClientHandler.Update)
		r.Delete("/product-clients/{id}", productClientHandler.Delete)
	})

	return &Router{router: router, db: db}
}

func createRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Timeout(60 * time.Second))

	return router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
