package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/config"
	"github.com/jmbtrust/donation-backend/internal/database"
	"github.com/jmbtrust/donation-backend/internal/handler"
	"github.com/jmbtrust/donation-backend/internal/mailer"
	"github.com/jmbtrust/donation-backend/internal/middleware"
	"github.com/jmbtrust/donation-backend/internal/payment"
	"github.com/jmbtrust/donation-backend/internal/queue"
	"github.com/jmbtrust/donation-backend/internal/report"
	"github.com/jmbtrust/donation-backend/internal/repository"
	"github.com/jmbtrust/donation-backend/internal/router"
	"github.com/jmbtrust/donation-backend/internal/scheduler"
	queue_publisher "github.com/jmbtrust/donation-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	counters := repository.NewCounterRepo(db)
	users := repository.NewUserRepo(db)
	donations := repository.NewDonationRepo(db)
	cash := repository.NewCashDonationRepo(db, counters)
	recipients := repository.NewRecipientRepo(db)
	inquiries := repository.NewInquiryRepo(db)
	images := repository.NewImageRepo(db)

	gateway := payment.NewClient(cfg.GatewayKeyID, cfg.GatewayKeySecret)

	// Report pipeline: builder -> broker -> SMTP, with a direct-send
	// fallback when the broker is unreachable.
	smtp := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	dispatch := func(ctx context.Context, ev queue.ReportEmailEvent) error {
		if err := queue_publisher.PublishReportEmail(ctx, ev); err != nil {
			if !smtp.Enabled() {
				return err
			}
			log.Printf("report: broker unavailable, sending directly to %s", ev.To)
			return smtp.Send(ev.To, ev.Subject, ev.Body, ev.AttachmentName, ev.Attachment)
		}
		return nil
	}
	jobs := report.NewJobs(report.NewBuilder(donations, cash), recipients, users, dispatch)

	sched, err := scheduler.New(jobs)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// No SMTP host means no consumer: queued report emails stay on the
	// durable queue until a configured instance drains them.
	if smtp.Enabled() {
		go queue.StartReportEmailConsumer(smtp)
	}

	// Rate limiting for the public abuse-prone endpoints.  A missing Redis
	// degrades to pass-through rather than blocking startup.
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())

	e := echo.New()
	e.Static("/uploads", cfg.UploadDir)
	router.Register(e, &router.Handlers{
		Users:       handler.NewUserHandler(cfg, users),
		Donations:   handler.NewDonationHandler(donations, gateway),
		Cash:        handler.NewCashDonationHandler(cash),
		Sponsors:    handler.NewSponsorHandler(images, cfg.UploadDir),
		DonorImages: handler.NewDonorImageHandler(images, cfg.UploadDir),
		Recipients:  handler.NewRecipientHandler(recipients),
		Inquiries:   handler.NewInquiryHandler(inquiries),
	}, cfg.JWTSecret, limit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
