package controller

import (
	"github.com/gin-gonic/gin"

	"elmora-backend/internal/config"
	"elmora-backend/internal/insight"
	"elmora-backend/internal/onboarding"
	"elmora-backend/internal/service"
	"elmora-backend/pkg/middleware"
)

// RegisterRoutes registers all route groups and their endpoints.
func RegisterRoutes(r *gin.Engine,
	cfg *config.APIConfig,
	authService service.AuthService,
	submissionService service.SubmissionService,
	statusService service.StatusService,
	reportService service.ReportService,
	generator *insight.Generator,
	store *onboarding.Store,
) {
	authCtrl := NewAuthController(authService)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/refresh", authCtrl.Refresh)
	}

	assessmentCtrl := NewAssessmentController(generator, statusService, reportService)
	api := r.Group("/api")
	{
		api.GET("/questions", assessmentCtrl.GetQuestions)
		api.POST("/analyze-wellbeing",
			middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
			assessmentCtrl.Analyze)
		api.GET("/status", assessmentCtrl.GetStatus)
		api.GET("/report", assessmentCtrl.DownloadReport)
	}

	onboardingCtrl := NewOnboardingController(store, submissionService)
	flow := r.Group("/api/onboarding")
	{
		flow.GET("/", onboardingCtrl.GetState)
		flow.PUT("/answers", onboardingCtrl.UpdateAnswers)
		flow.PUT("/basics", onboardingCtrl.UpdateBasics)
		flow.PUT("/photo", onboardingCtrl.UpdatePhoto)
		flow.POST("/next", onboardingCtrl.NextStep)
		flow.POST("/prev", onboardingCtrl.PrevStep)
		flow.POST("/step", onboardingCtrl.GoToStep)
		flow.POST("/reset", onboardingCtrl.Reset)
		flow.GET("/preview", onboardingCtrl.Preview)
		flow.POST("/submit", onboardingCtrl.Submit)
		flow.GET("/results", onboardingCtrl.Results)
	}
}
