package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskvault/taskvault/internal/admin"
	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/todos"
	"github.com/taskvault/taskvault/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthHandler    *auth.Handler
	TodosHandler   *todos.Handler
	UsersHandler   *users.Handler
	AdminHandler   *admin.Handler
	AuthMiddleware auth.Middleware
}

// NewRouter constructs the chi.Router with TaskVault defaults. The /auth
// surface is public; everything else requires a valid bearer token, and
// /admin additionally requires the admin role.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(protected chi.Router) {
		protected.Use(params.AuthMiddleware.Authenticate)

		protected.Route("/user", params.UsersHandler.MountRoutes)
		params.TodosHandler.MountRoutes(protected)

		protected.Route("/admin", func(adminRouter chi.Router) {
			adminRouter.Use(params.AuthMiddleware.RequireRole(auth.RoleAdmin))
			params.AdminHandler.MountRoutes(adminRouter)
		})
	})

	return r
}
