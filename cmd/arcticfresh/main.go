package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"arcticfresh/internal/config"
	"arcticfresh/internal/http/handlers"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/mail"
	"arcticfresh/internal/media"
	"arcticfresh/internal/mongostore"
	"arcticfresh/internal/repos"
	"arcticfresh/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeBackend()

	// Auth wiring
	creds, err := services.NewStaticCredentials(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		log.Fatal(err)
	}
	if !creds.Enabled() {
		log.Printf("[warn] ADMIN_PASSWORD / ADMIN_PASSWORD_HASH not set; admin login is disabled")
	}
	authSvc := services.NewAuthService(creds, cfg.JWTSecret)

	var mailer services.Mailer = mail.Console{}
	if cfg.MailConfigured() {
		mailer = mail.NewResend(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailTo)
	} else {
		log.Printf("[warn] RESEND_API_KEY not set; inquiries are logged, not emailed")
	}

	var uploader media.Uploader
	if cfg.CloudinaryURL != "" {
		uploader, err = media.NewCloudinary(cfg.CloudinaryURL, "arcticfresh")
	} else {
		uploader, err = media.NewLocal(cfg.MediaDir, "/media")
	}
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(backend, cfg, authSvc, mailer, uploader)
	streams := make(chan struct{})
	deps.WishlistHandler.Done = streams

	if cfg.SeedDemo {
		seeded, err := services.SeedDemo(ctx, deps.Catalog)
		if err != nil {
			log.Fatalf("seed demo catalog: %v", err)
		}
		if seeded {
			applog.Info(nil, "seed.demo", nil)
		}
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    handlers.DefaultUploadBytes + 1<<20,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/") || p == "/api/wishlist/stream"
		},
	}))

	// ---------- Static assets ----------
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s (%s uploads)", deps.UploadHandler.Dir, uploader.Backend())
	app.Static("/static", "./web/static")

	handlers.Mount(app, deps, handlers.DefaultLimits())

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("[error] listen: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("[shutdown] draining connections")
	close(streams)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("[error] shutdown: %v", err)
	}
}

// openBackend connects the storage named by DB_DSN: MongoDB for mongodb://
// URIs, sqlite otherwise.
func openBackend(ctx context.Context, cfg config.Config) (handlers.Backend, func(), error) {
	if cfg.UsesMongo() {
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		client, db, err := mongostore.Connect(connectCtx, cfg.DBDSN, cfg.MongoDB)
		if err != nil {
			return handlers.Backend{}, nil, err
		}
		log.Printf("[db] mongodb database %s", cfg.MongoDB)
		return handlers.Backend{
				Products:   mongostore.NewProductStore(db),
				Categories: mongostore.NewCategoryStore(db),
				Inquiries:  mongostore.NewInquiryStore(db),
				Wishlist:   mongostore.NewWishlistStore(db).Storage,
			}, func() {
				_ = client.Disconnect(context.Background())
			}, nil
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return handlers.Backend{}, nil, err
	}
	log.Printf("[db] sqlite %s", cfg.DBDSN)
	return handlers.Backend{
		Products:   repos.NewProductRepo(db),
		Categories: repos.NewCategoryRepo(db),
		Inquiries:  repos.NewInquiryRepo(db),
		Wishlist:   repos.NewWishlistRepo(db).Storage,
	}, func() { _ = db.Close() }, nil
}
