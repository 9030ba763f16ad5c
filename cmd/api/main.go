package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockzen-backend/config"
	_ "mockzen-backend/docs"
	v1 "mockzen-backend/internal/delivery/http/v1"
	"mockzen-backend/internal/repository/postgres"
	"mockzen-backend/internal/usecase"
	"mockzen-backend/pkg/auth"
	"mockzen-backend/pkg/database"
	"mockzen-backend/pkg/llm"
	"mockzen-backend/pkg/logger"
	"mockzen-backend/pkg/redis"
	"mockzen-backend/pkg/security"
	"mockzen-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           MockZen Backend API
// @version         1.0
// @description     Backend for AI mock interviews using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	logger.Log.Info("Starting mockzen backend", "port", cfg.Port)

	secLogger := security.InitSecurityLogger("mockzen-backend", os.Getenv("APP_ENV"))
	defer secLogger.Sync()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.SecurityLogToDB {
		secLogger.SetPersistFunc(postgres.NewSecurityEventStore(dbPool).Insert)
	}

	// 4. Setup Redis (rate limiting degrades to in-memory without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	scheduleRepo := postgres.NewScheduleRepository(dbPool)
	institutionRepo := postgres.NewInstitutionRepository(dbPool)
	batchRepo := postgres.NewBatchRepository(dbPool)
	membershipRepo := postgres.NewMembershipRepository(dbPool)
	userCreditRepo := postgres.NewUserCreditRepository(dbPool)
	institutionCreditRepo := postgres.NewInstitutionCreditRepository(dbPool)

	// 6. Setup LLM client
	var generator usecase.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Log.Error("Failed to create LLM client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		generator = client
	} else {
		logger.Log.Warn("GEMINI_API_KEY not set - question generation will be unavailable")
	}

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	profileUC := usecase.NewProfileUsecase(userRepo)
	userCreditUC := usecase.NewCreditUsecase(userCreditRepo)
	institutionCreditUC := usecase.NewCreditUsecase(institutionCreditRepo)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, scheduleRepo, userRepo, userCreditRepo)
	scheduleUC := usecase.NewScheduleUsecase(scheduleRepo, userRepo)
	membershipUC := usecase.NewMembershipUsecase(batchRepo, institutionRepo, membershipRepo, userRepo)
	institutionUC := usecase.NewInstitutionUsecase(
		institutionRepo, batchRepo, membershipRepo, userRepo, scheduleRepo, interviewRepo, institutionCreditUC)
	superAdminUC := usecase.NewSuperAdminUsecase(institutionRepo, institutionCreditUC, userCreditUC)
	questionUC := usecase.NewQuestionUsecase(generator)

	// 8. Register custom validators on Gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 9. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.AuthURL + "/.well-known/jwks.json")

	// 10. Honeypot recorder
	honeypot := security.NewHoneypotRecorder(cfg.HoneypotLogPath, cfg.AdminAlertWebhook, secLogger)

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		CreditUC:      userCreditUC,
		InterviewUC:   interviewUC,
		QuestionUC:    questionUC,
		ScheduleUC:    scheduleUC,
		MembershipUC:  membershipUC,
		InstitutionUC: institutionUC,
		SuperAdminUC:  superAdminUC,
		JWKSProvider:  jwksProvider,
		Honeypot:      honeypot,
		Config:        cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited")
}
