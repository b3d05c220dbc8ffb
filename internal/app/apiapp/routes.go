package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	backendrepo "github.com/Zerokoinhub/admin-console/internal/repo/backendhttp"
	pgrepo "github.com/Zerokoinhub/admin-console/internal/repo/postgres"
	accesssvc "github.com/Zerokoinhub/admin-console/internal/services/access"
	staffauthsvc "github.com/Zerokoinhub/admin-console/internal/services/staffauth"
	workflowsvc "github.com/Zerokoinhub/admin-console/internal/services/workflow"
	"github.com/Zerokoinhub/admin-console/internal/transport/http/handlers"
)

type Dependencies struct {
	StaffAuthService *staffauthsvc.Service
	WorkflowService  *workflowsvc.Service
	AccessService    *accesssvc.Service
	UsersRepo        *backendrepo.UsersRepo
	AuditRepo        *pgrepo.AuditRepo
	Logger           *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.StaffAuthService)
	reviewHandler := handlers.NewReviewHandler(deps.WorkflowService)
	accessHandler := handlers.NewAccessHandler(deps.AccessService, deps.UsersRepo)
	auditHandler := handlers.NewAuditHandler(deps.AuditRepo)

	r.Get("/health", healthHandler.Handle)
	r.Post("/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(StaffAuthMiddleware(deps.StaffAuthService, deps.Logger))

		r.Post("/auth/logout", authHandler.Logout)

		r.Post("/review/user", reviewHandler.SelectUser)
		r.Post("/review/session", reviewHandler.OpenSession)
		r.Get("/review/session", reviewHandler.GetSession)
		r.Delete("/review/session", reviewHandler.CloseSession)
		r.Post("/review/submissions/{submissionID}/approve", reviewHandler.Approve)
		r.Post("/review/submissions/{submissionID}/reject", reviewHandler.Reject)
		r.Get("/review/aggregates", reviewHandler.Aggregates)
		r.Post("/review/finalize", reviewHandler.Finalize)
		r.Post("/review/credit/retry", reviewHandler.RetryCredit)

		r.Post("/users/{userID}/access/toggle", accessHandler.Toggle)

		r.Get("/audit/recent", auditHandler.ListRecent)
	})
}
