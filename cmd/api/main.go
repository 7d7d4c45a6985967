package main

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/grapl-ai/grapl-site/internal/config"
	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/infra/database"
	"github.com/grapl-ai/grapl-site/internal/infra/http/handlers"
	"github.com/grapl-ai/grapl-site/internal/infra/http/middleware"
	"github.com/grapl-ai/grapl-site/internal/infra/integration/supabase"
	"github.com/grapl-ai/grapl-site/internal/infra/mail"
	"github.com/grapl-ai/grapl-site/internal/infra/queue"
	"github.com/grapl-ai/grapl-site/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// 1. Store (Supabase REST by default, direct Postgres when selected)
	var (
		products usecase.ProductRepositoryInterface
		leads    entity.LeadRepositoryInterface
		db       *sql.DB
	)
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			sugar.Fatalw("database connection failed", "error", err)
		}
		defer db.Close()
		products = database.NewProductRepository(db)
		leads = database.NewLeadRepository(db)
	default:
		client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
		products = client
		leads = client
	}

	if !cfg.StoreConfigured() {
		sugar.Warnw("store credentials missing, submissions will be rejected",
			"backend", cfg.StoreBackend)
	}

	// 2. Signup event pipeline (optional)
	var producer usecase.QueueProducerInterface
	var rabbitConn *amqp.Connection
	if cfg.RabbitURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitURL)
		if err != nil {
			sugar.Fatalw("rabbitmq connection failed", "error", err)
		}
		defer rabbit.Close()
		rabbitConn = rabbit.Conn
		producer = queue.NewProducer(rabbit.Conn, rabbit.Ch)

		if cfg.MailConfigured() {
			mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
			worker := queue.NewWorker(rabbit.Ch, mailSender, sugar)
			go worker.Start(queue.QueueName)
		} else {
			sugar.Warn("mail not configured, signup events will stay queued")
		}
	}

	// 3. Use cases
	catalog := usecase.NewCatalogReader(products, fallbackPolicy(cfg.CatalogOnUnavailable), sugar)
	submitLead := usecase.NewSubmitLeadUseCase(products, leads, producer, sugar, cfg.StoreConfigured())

	// 4. Handlers
	waitlistHandler := handlers.NewWaitlistHandler(submitLead)
	pagesHandler := handlers.NewPagesHandler(catalog, sugar)
	seoHandler := handlers.NewSEOHandler(catalog, strings.TrimRight(cfg.BaseURL, "/"))
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.SupabaseURL)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://grapl.ai", "https://www.grapl.ai", "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/waitlist", waitlistHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/sitemap.xml", seoHandler.HandleSitemap)
	r.Get("/robots.txt", seoHandler.HandleRobots)
	r.Get("/privacy", pagesHandler.HandlePrivacy)
	r.Get("/", pagesHandler.HandleHome)
	r.Get("/{slug}", pagesHandler.HandleExperiment)

	sugar.Infow("🔥 grapl.ai site listening", "addr", cfg.ListenAddr, "store", cfg.StoreBackend)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func fallbackPolicy(v string) usecase.FallbackPolicy {
	if v == string(usecase.FallbackEmpty) {
		return usecase.FallbackEmpty
	}
	return usecase.FallbackStatic
}
