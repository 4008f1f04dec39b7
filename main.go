// @title           BOQ Portal API
// @version         1.0
// @description     Projects, BOQ documents, vendor performas and the quote comparison matrix.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boqportal/config"
	_ "boqportal/docs"
	"boqportal/handlers"
	"boqportal/repository"
	"boqportal/services"
	"boqportal/storage"
	"boqportal/utils"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	utils.SetJWTSecret(cfg.JWTSecret)

	db := storage.InitDB(cfg.PostgresDSN())
	defer db.Close()
	if err := storage.EnsureAuthSchema(db); err != nil {
		log.Fatalf("Failed to prepare auth schema: %v", err)
	}
	gormDB := storage.InitGormDB(cfg.PostgresDSN(), cfg.GormLogLevel)

	sqlStore := storage.NewSQLStore(db)
	projects := repository.NewGormProjectRepository(gormDB)
	performas := repository.NewGormPerformaRepository(gormDB)

	deps := appDeps{
		Sessions:   sqlStore,
		Activity:   sqlStore,
		Projects:   projects,
		Performas:  performas,
		Comparison: services.NewComparisonService(performas, cfg.ComparisonCacheSize),
	}

	if cfg.ObjectStorageEnabled() {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		deps.Objects = s3Store
		log.Printf("Object storage enabled (bucket %s)", cfg.S3Bucket)
	} else {
		log.Println("Warning: S3 settings incomplete, document uploads are disabled")
	}

	if cfg.SMTPEnabled() {
		deps.Notifier = services.NewEmailService(services.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			User:      cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			From:      cfg.SMTPFrom,
			PortalURL: cfg.PublicBaseURL,
		})
	} else {
		log.Println("Warning: SMTP settings incomplete, vendor notifications are disabled")
	}

	// Nightly maintenance: expire overdue performas, drop dead sessions
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	expiryJob := services.NewExpiryJob(performas, sqlStore)
	if _, err := c.AddJob(cfg.ExpiryCron, cron.FuncJob(expiryJob.Run)); err != nil {
		log.Fatalf("Failed to schedule expiry job: %v", err)
	}
	c.Start()

	r := newRouter(deps, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	<-c.Stop().Done()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}

var _ handlers.ObjectStore = (*storage.S3Store)(nil)
