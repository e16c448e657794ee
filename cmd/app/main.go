package main

import (
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"elmora-backend/internal/config"
	"elmora-backend/internal/controller"
	"elmora-backend/internal/db"
	"elmora-backend/internal/insight"
	"elmora-backend/internal/llm"
	"elmora-backend/internal/model"
	"elmora-backend/internal/onboarding"
	"elmora-backend/internal/repository"
	"elmora-backend/internal/service"
	"elmora-backend/pkg/middleware"
	"elmora-backend/utilities"
)

func main() {
	printStartUpBanner()

	// Secrets (.env) first, then the XML configuration.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on the environment")
	}
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utilities.SetupLogging("logs")

	// Initialize DB using the loaded config and run migrations.
	db.InitDBFromConfig(cfg)
	if err := db.GetDB().AutoMigrate(&model.User{}, &model.Profile{}, &model.AssessmentRecord{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Create repositories.
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	assessmentRepo := repository.NewAssessmentRepository()

	// Generative-AI client; without a credential the insight generator runs
	// fallback-only.
	aiClient := llm.NewClient(
		cfg.AI.URL,
		cfg.AI.Model,
		cfg.AI.APIKey(),
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
	)
	generator := insight.NewGenerator(aiClient)

	// Create services.
	authService := service.NewAuthService(userRepo)
	submissionService := service.NewSubmissionService(profileRepo, assessmentRepo, generator, utilities.GlobalEventBus)
	flags := service.NewCompletionFlags()
	service.InitCompletionFlagListeners(flags)
	statusService := service.NewStatusService(profileRepo, flags)
	reportService := service.NewReportService(profileRepo, assessmentRepo)

	store := onboarding.NewStore()

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	r.Use(utilities.AuthMiddleware())

	controller.RegisterRoutes(r, cfg,
		authService, submissionService, statusService, reportService,
		generator, store,
	)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("ELMORA", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("ELMORA API (v%s)\n\n", "1.0.0")
}
