package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRepo "zamanat_backend/internals/features/courses/courses/repository"
	courseRoute "zamanat_backend/internals/features/courses/courses/route"
	assessmentRoute "zamanat_backend/internals/features/learning/assessments/route"
	assessmentService "zamanat_backend/internals/features/learning/assessments/service"
	uploadRoute "zamanat_backend/internals/features/learning/assignments/route"
	uploadService "zamanat_backend/internals/features/learning/assignments/service"
	paymentController "zamanat_backend/internals/features/payments/enrollment/controller"
	paymentRoute "zamanat_backend/internals/features/payments/enrollment/route"
	paymentService "zamanat_backend/internals/features/payments/enrollment/service"
	authRoute "zamanat_backend/internals/features/users/auth/route"
	authService "zamanat_backend/internals/features/users/auth/service"
	profileRepo "zamanat_backend/internals/features/users/profile/repository"
	profileRoute "zamanat_backend/internals/features/users/profile/route"
	userRepo "zamanat_backend/internals/features/users/user/repository"
	userRoute "zamanat_backend/internals/features/users/user/route"
	"zamanat_backend/internals/middlewares"
	authMiddleware "zamanat_backend/internals/middlewares/auth"
	"zamanat_backend/internals/middlewares/idempotency"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	DB          *gorm.DB
	Auth        *authService.AuthService
	Pipeline    *paymentService.Pipeline
	Idempotency idempotency.Store
	Courses     courseRepo.Store
	Profiles    profileRepo.Store
	Users       userRepo.Store
	Uploads     *uploadService.UploadService
	Assessor    *assessmentService.Assessor
	ClientURL   string
}

func SetupRoutes(app *fiber.App, d Deps) {
	BaseRoutes(app, d.DB)

	api := app.Group("/api", middlewares.GlobalRateLimiter())
	protect := authMiddleware.AuthMiddleware(d.DB)

	log.Println("[INFO] Mounting auth routes...")
	authRoute.AuthRoutes(api, d.Auth, protect)

	log.Println("[INFO] Mounting course routes...")
	courseRoute.CourseRoutes(api, d.Courses, protect)

	log.Println("[INFO] Mounting profile routes...")
	profileRoute.ProfileRoutes(api, d.Profiles, protect)

	log.Println("[INFO] Mounting admin user routes...")
	userRoute.UserAdminRoutes(api, d.Users, protect)

	log.Println("[INFO] Mounting upload and assessment routes...")
	uploadRoute.UploadRoutes(api, d.Uploads, protect)
	assessmentRoute.AssessmentRoutes(api, d.Assessor, protect)

	log.Println("[INFO] Mounting payment routes...")
	var idem fiber.Handler
	if d.Idempotency != nil {
		idem = idempotency.New(d.Idempotency)
	}
	paymentRoute.PaymentRoutes(api, paymentController.NewPaymentController(d.Pipeline, d.ClientURL), protect, idem)
}
