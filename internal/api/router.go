package api

import (
	"net/http"
	"slices"
	"time"
	"tienda_api/internal/api/handler"
	"tienda_api/internal/api/middleware"
	"tienda_api/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Products   *service.ProductService
	Categories *service.CategoryService
}

func NewRouter(svc Services, allowedOrigins []string, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(corsOptions(allowedOrigins)))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	auth := middleware.NewAuth(svc.Auth, log)

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth, log)
		api.Route("/auth", func(ar chi.Router) { authHandler.RegisterRoutes(ar, auth) })

		userHandler := handler.NewUserHandler(svc.Users, log)
		api.Route("/usuarios", func(ur chi.Router) { userHandler.RegisterRoutes(ur, auth) })

		productHandler := handler.NewProductHandler(svc.Products, log)
		api.Route("/productos", func(pr chi.Router) { productHandler.RegisterRoutes(pr, auth) })

		categoryHandler := handler.NewCategoryHandler(svc.Categories, log)
		api.Route("/categorias", func(cr chi.Router) { categoryHandler.RegisterRoutes(cr, auth) })
	})

	return r
}

// corsOptions allows credentials only for an explicit origin list. Bearer tokens
// travel in a header, so the wildcard never needs them.
func corsOptions(allowedOrigins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(allowedOrigins, "*"),
	}
}
