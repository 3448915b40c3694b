package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/abhijan2402/tomarket-admin/controllers"
	"github.com/abhijan2402/tomarket-admin/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for container health checks (root level)
	r.Handle("/health", http.HandlerFunc(controllers.HealthHandler)).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	origins := []string{
		"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000", "http://127.0.0.1:5173",
	}
	if originsEnv != "" {
		parts := strings.Split(originsEnv, ",")
		for _, p := range parts {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-CRON-KEY", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Cron payouts: approved proofs become claimed (protected via X-CRON-KEY)
	cronLimiter := middleware.NewIPRateLimiter(1000, time.Hour)
	cronKey := middleware.CronKeyMiddleware(os.Getenv("CRON_API_KEY"))
	api.Handle("/cron/payouts", cronLimiter.Middleware(cronKey(http.HandlerFunc(controllers.PayoutHandler)))).Methods(http.MethodPost)

	// Public content
	api.Handle("/settings/logo", http.HandlerFunc(controllers.LogoHandler)).Methods(http.MethodGet)
	api.Handle("/banners", http.HandlerFunc(controllers.BannersHandler)).Methods(http.MethodGet)
	api.Handle("/support", http.HandlerFunc(controllers.SupportHandler)).Methods(http.MethodGet)

	UsersRoutes(api)
	SetAdminRoutes(api)

	return r
}
