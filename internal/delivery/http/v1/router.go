package v1

import (
	"net/http"
	"time"

	"mockzen-backend/config"
	"mockzen-backend/internal/delivery/http/middleware"
	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/auth"
	"mockzen-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	CreditUC      domain.CreditUsecase // User ledger
	InterviewUC   domain.InterviewUsecase
	QuestionUC    domain.QuestionUsecase
	ScheduleUC    domain.ScheduleUsecase
	MembershipUC  domain.MembershipUsecase
	InstitutionUC domain.InstitutionUsecase
	SuperAdminUC  domain.SuperAdminUsecase
	JWKSProvider  *auth.Provider
	Honeypot      *security.HoneypotRecorder
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.Honeypot(cfg, deps.Honeypot))
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		cfg.RateLimitGlobalThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg, deps.AuthUC))
	{
		NewProfileHandler(protected, deps.ProfileUC)
		NewCreditHandler(protected, deps.CreditUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewMembershipHandler(protected, deps.MembershipUC, deps.ScheduleUC)
		NewInstitutionHandler(protected, deps.InstitutionUC, deps.ScheduleUC)

		// LLM-backed endpoints carry a per-user rate limit on top of auth
		ai := protected.Group("")
		ai.Use(middleware.RateLimitMiddleware(middleware.AIRateLimitConfig(
			cfg.RateLimitAIThreshold,
			time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
		)))
		NewQuestionHandler(ai, deps.QuestionUC)
	}

	// Real admin surface, mounted under an unguessable path. The honeypot
	// middleware leaves this prefix alone.
	realAdminPath := cfg.RealAdminPath
	if realAdminPath == "" {
		realAdminPath = "/v1/superadmin"
	}
	admin := r.Group(realAdminPath)
	admin.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg, deps.AuthUC))
	admin.Use(middleware.RequireUserType(domain.UserTypeSuperAdmin))
	admin.Use(middleware.RateLimitMiddleware(middleware.SuperAdminRateLimitConfig()))
	{
		NewSuperAdminHandler(admin, deps.SuperAdminUC)
	}

	return r
}
