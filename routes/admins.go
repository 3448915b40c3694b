package routes

import (
	"net/http"
	"time"

	"github.com/abhijan2402/tomarket-admin/controllers/admins"
	"github.com/abhijan2402/tomarket-admin/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Rate limiter for admin login: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Dashboard stats
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.DashboardHandler)).Methods(http.MethodGet)

	// Admin profile
	adminRouter.Handle("/profile", http.HandlerFunc(admins.GetAdminProfile)).Methods(http.MethodGet)
	adminRouter.Handle("/profile", http.HandlerFunc(admins.UpdateAdminProfile)).Methods(http.MethodPut)
	adminRouter.Handle("/password", http.HandlerFunc(admins.UpdateAdminPassword)).Methods(http.MethodPut)

	// Admin account management (super-admin gated in the handlers)
	adminRouter.Handle("/admins", http.HandlerFunc(admins.AdminListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/admins", http.HandlerFunc(admins.CreateAdminHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/admins/{id:[0-9]+}/active", http.HandlerFunc(admins.SetAdminActiveHandler)).Methods(http.MethodPut)

	// End user management
	adminRouter.Handle("/users", http.HandlerFunc(admins.UserListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}/active", http.HandlerFunc(admins.SetUserActiveHandler)).Methods(http.MethodPut)

	// Task moderation
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.TaskListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.CreateTaskHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/tasks/group", http.HandlerFunc(admins.CreateGroupTaskHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.UpdateTaskHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.DeleteTaskHandler)).Methods(http.MethodDelete)
	adminRouter.Handle("/tasks/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveTaskHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/tasks/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectTaskHandler)).Methods(http.MethodPut)

	// Submission moderation
	adminRouter.Handle("/tasks/{id:[0-9]+}/proofs", http.HandlerFunc(admins.TaskProofsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/proofs/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveProofHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/proofs/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectProofHandler)).Methods(http.MethodPut)

	// Category management
	adminRouter.Handle("/categories", http.HandlerFunc(admins.CategoryListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/categories", http.HandlerFunc(admins.CreateCategoryHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/categories/{id:[0-9]+}", http.HandlerFunc(admins.UpdateCategoryHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/categories/{id:[0-9]+}", http.HandlerFunc(admins.DeleteCategoryHandler)).Methods(http.MethodDelete)

	// Settings
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettingsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettingsHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/settings/logo", http.HandlerFunc(admins.UploadLogoHandler)).Methods(http.MethodPost)

	// Home layout banners
	adminRouter.Handle("/banners", http.HandlerFunc(admins.BannerListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/banners", http.HandlerFunc(admins.CreateBannerHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/banners/{id:[0-9]+}", http.HandlerFunc(admins.UpdateBannerHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/banners/{id:[0-9]+}", http.HandlerFunc(admins.DeleteBannerHandler)).Methods(http.MethodDelete)

	// Support
	adminRouter.Handle("/support/settings", http.HandlerFunc(admins.SupportSettingListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/support/settings", http.HandlerFunc(admins.CreateSupportSettingHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/support/settings/{id:[0-9]+}", http.HandlerFunc(admins.UpdateSupportSettingHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/support/settings/{id:[0-9]+}", http.HandlerFunc(admins.DeleteSupportSettingHandler)).Methods(http.MethodDelete)
	adminRouter.Handle("/support/queries", http.HandlerFunc(admins.SupportQueryListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/support/queries/{id:[0-9]+}/resolve", http.HandlerFunc(admins.ResolveSupportQueryHandler)).Methods(http.MethodPut)
}
