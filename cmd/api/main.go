package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/elbaul-api/internal/application/auth"
	"github.com/jhoicas/elbaul-api/internal/application/cart"
	"github.com/jhoicas/elbaul-api/internal/application/inventory"
	"github.com/jhoicas/elbaul-api/internal/application/order"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/internal/infrastructure/events"
	"github.com/jhoicas/elbaul-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/elbaul-api/internal/infrastructure/pdf"
	"github.com/jhoicas/elbaul-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/elbaul-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/elbaul-api/internal/interfaces/http"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/config"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	txRunner := postgres.NewTxRunner(pool)
	repos := postgres.NewRepos(pool)
	clk := clock.NewSystem()

	// Redis es opcional: sin él el logout no revoca en servidor y el checkout ignora Idempotency-Key.
	var (
		revoker auth.TokenRevoker
		idem    order.IdempotencyStore
	)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		revoker = infraredis.NewTokenStore(rdb)
		idem = infraredis.NewIdempotencyStore(rdb)
	} else {
		log.Warn().Msg("REDIS no configurado: logout e idempotencia deshabilitados")
	}

	var publisher order.EventPublisher
	var kafkaPublisher *events.KafkaPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Kafka, log)
		publisher = kafkaPublisher
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	authUC := auth.NewAuthUseCase(txRunner, repos.Users, revoker, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, clk, log)
	checkoutUC := order.NewCheckoutUseCase(txRunner, repos, publisher, appMetrics, idem, clk, log, order.CheckoutConfig{
		Timeout:        cfg.Checkout.Timeout,
		IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(httpRouter.Metrics(appMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ElBaul API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  usecase.NewCategoryUseCase(txRunner, repos.Categories, clk),
		ProductUC:   usecase.NewProductUseCase(txRunner, repos, clk, log),
		Ledger:      inventory.NewLedgerUseCase(txRunner, repos, log),
		CartUC:      cart.NewCartUseCase(txRunner, repos, clk, log),
		CheckoutUC:  checkoutUC,
		CancelUC:    order.NewCancelUseCase(txRunner, publisher, appMetrics, clk, log),
		OrderQuery:  order.NewQueryUseCase(repos, infrapdf.NewReceiptGenerator("")),
		OrderStatus: order.NewStatusUseCase(txRunner, log),
		ShipmentUC:  usecase.NewShipmentUseCase(txRunner, repos, clk, log),
		ReturnUC:    usecase.NewReturnUseCase(txRunner, repos, clk, log),
		FavoriteUC:  usecase.NewFavoriteUseCase(txRunner, repos, clk),
		ReviewUC:    usecase.NewReviewUseCase(txRunner, repos, clk),
		PostUC:      usecase.NewPostUseCase(txRunner, repos, clk, log),
		CommentUC:   usecase.NewCommentUseCase(txRunner, repos, clk),
		ReactionUC:  usecase.NewReactionUseCase(txRunner, repos, clk),

		JWTSecret:      cfg.JWT.Secret,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("cerrar publicador de eventos")
		}
	}

	log.Info().Msg("aplicación detenida")
}
