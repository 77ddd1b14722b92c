package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/Jgilbert-dev/inspectrixV4/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Report  *apiHandler.ReportHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.POST("/api/v1/auth/password/reset", handlers.Auth.ResetPassword)
	r.POST("/api/v1/auth/password/reset/confirm", handlers.Auth.ConfirmReset)

	// Protected routes
	r.GET("/api/v1/auth/me", authMiddleware(handlers.Auth.Me))
	r.POST("/api/v1/auth/password/change", authMiddleware(handlers.Auth.ChangePassword))

	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/reports", authMiddleware(handlers.Report.ListReports))
	r.POST("/api/v1/reports", authMiddleware(handlers.Report.CreateReport))
	r.PUT("/api/v1/reports/{id}", authMiddleware(handlers.Report.UpdateReport))
	r.DELETE("/api/v1/reports/{id}", authMiddleware(handlers.Report.DeleteReport))

	return r
}
