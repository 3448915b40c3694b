package routes

import (
	"net/http"
	"time"

	"github.com/abhijan2402/tomarket-admin/controllers/auth"
	"github.com/abhijan2402/tomarket-admin/controllers/users"
	"github.com/abhijan2402/tomarket-admin/middleware"

	"github.com/gorilla/mux"
)

func UsersRoutes(api *mux.Router) {
	// Rate limiter for auth endpoints: 10 attempts per IP per minute
	loginLimiter := middleware.NewIPRateLimiter(10, time.Minute)

	// Auth endpoints
	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout-all", middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutAllHandler))).Methods(http.MethodPost)

	// Task participation
	api.Handle("/tasks", middleware.AuthMiddleware(http.HandlerFunc(users.TaskListHandler))).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}/start", middleware.AuthMiddleware(http.HandlerFunc(users.StartTaskHandler))).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}/submit", middleware.AuthMiddleware(http.HandlerFunc(users.SubmitTaskHandler))).Methods(http.MethodPost)
	api.Handle("/me/tasks", middleware.AuthMiddleware(http.HandlerFunc(users.MyTasksHandler))).Methods(http.MethodGet)

	// Support inbox
	api.Handle("/support/queries", middleware.AuthMiddleware(http.HandlerFunc(users.SubmitSupportQueryHandler))).Methods(http.MethodPost)
}
