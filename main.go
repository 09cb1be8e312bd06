package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"zamanat_backend/internals/configs"
	database "zamanat_backend/internals/databases"
	courseRepo "zamanat_backend/internals/features/courses/courses/repository"
	assessmentRepo "zamanat_backend/internals/features/learning/assessments/repository"
	assessmentService "zamanat_backend/internals/features/learning/assessments/service"
	assignmentRepo "zamanat_backend/internals/features/learning/assignments/repository"
	uploadService "zamanat_backend/internals/features/learning/assignments/service"
	"zamanat_backend/internals/features/notifications/email"
	"zamanat_backend/internals/features/notifications/whatsapp"
	paymentRepo "zamanat_backend/internals/features/payments/enrollment/repository"
	"zamanat_backend/internals/features/payments/enrollment/scheduler"
	paymentService "zamanat_backend/internals/features/payments/enrollment/service"
	authScheduler "zamanat_backend/internals/features/users/auth/scheduler"
	authService "zamanat_backend/internals/features/users/auth/service"
	profileRepo "zamanat_backend/internals/features/users/profile/repository"
	userRepo "zamanat_backend/internals/features/users/user/repository"
	helper "zamanat_backend/internals/helpers"
	"zamanat_backend/internals/middlewares"
	"zamanat_backend/internals/middlewares/idempotency"
	"zamanat_backend/internals/middlewares/logger"
	routes "zamanat_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             configs.UploadMaxBytes + 1<<20,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.RequestID(30 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware(configs.ClientURL))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	database.Migrate(database.DB)
	db := database.DB

	// idempotency keys live in redis when available, memory otherwise
	var (
		idemStore idempotency.Store
		rdb       *redis.Client
	)
	if configs.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := idempotency.NewRedisClient(ctx, configs.RedisURL)
		cancel()
		if err != nil {
			log.Printf("⚠️ redis unavailable, idempotency falls back to memory: %v", err)
		} else {
			rdb = client
			idemStore = idempotency.NewRedisStore(rdb, 24*time.Hour)
		}
	}
	if idemStore == nil {
		idemStore = idempotency.NewMemoryStore(24 * time.Hour)
	}

	mailer := email.NewMailer(configs.SendgridAPIKey, email.Address{Name: configs.FromName, Email: configs.FromEmail})
	messenger := whatsapp.NewClient(configs.WhatsAppAPIBase, configs.WhatsAppPhoneID, configs.WhatsAppToken, configs.GatewayTimeout)

	// 💳 settlement pipeline
	directory := paymentRepo.NewGormDirectory(db)
	orders := paymentRepo.NewGormOrderStore(db)
	gateway := paymentService.NewPhonePeClient(paymentService.PhonePeConfig{
		HostURL:       configs.PhonePeHostURL,
		ClientID:      configs.PhonePeClientID,
		ClientSecret:  configs.PhonePeClientSecret,
		ClientVersion: configs.PhonePeClientVersion,
		Timeout:       configs.GatewayTimeout,
		TokenTTL:      configs.GatewayTokenTTL,
	})
	provisioner := &paymentService.Provisioner{
		Directory:          directory,
		Folders:            paymentService.DiskFolders{Root: configs.StoragePath},
		Mailer:             mailer,
		Messenger:          messenger,
		DefaultModuleCount: configs.CourseModuleCount,
		Timeout:            30 * time.Second,
	}
	pipeline := paymentService.NewPipeline(orders, gateway, provisioner, configs.APIURL)

	// ⏱ schedulers after the DB is ready
	var crons []*cron.Cron
	if c, err := scheduler.NewReconcileSweep(orders, pipeline.Reconciler, configs.ReconcileMinAge).Start(configs.ReconcileCron); err != nil {
		log.Printf("⚠️ reconcile sweep not started: %v", err)
	} else {
		crons = append(crons, c)
	}
	if c, err := authScheduler.StartOTPCleanupScheduler(db); err != nil {
		log.Printf("⚠️ OTP cleanup not started: %v", err)
	} else {
		crons = append(crons, c)
	}

	assignments := assignmentRepo.NewGormStore(db)
	uploads := uploadService.NewUploadService(assignments, configs.StoragePath, int64(configs.UploadMaxBytes),
		func(ctx context.Context, userID uuid.UUID) (string, error) {
			contact, err := directory.UserContact(ctx, userID)
			if err != nil {
				return "", err
			}
			return contact.Name, nil
		})
	assessor := assessmentService.NewAssessor(
		assignments,
		assessmentRepo.NewGormStore(db),
		assessmentService.NewGeminiClient(configs.GeminiAPIBase, configs.GeminiModel, configs.GeminiAPIKey, 2*time.Minute),
		configs.StoragePath,
	)

	secureCookie := os.Getenv("RAILWAY_ENVIRONMENT") != "" || os.Getenv("RENDER") != ""
	routes.SetupRoutes(app, routes.Deps{
		DB:          db,
		Auth:        authService.NewAuthService(db, mailer, authService.IDTokenVerifier{ClientID: configs.GoogleClientID}, secureCookie),
		Pipeline:    pipeline,
		Idempotency: idemStore,
		Courses:     courseRepo.NewGormStore(db),
		Profiles:    profileRepo.NewGormStore(db),
		Users:       userRepo.NewGormStore(db),
		Uploads:     uploads,
		Assessor:    assessor,
		ClientURL:   configs.ClientURL,
	})

	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 2 * time.Minute
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	for _, c := range crons {
		<-c.Stop().Done()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close()
}
