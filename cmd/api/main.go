package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Agromercados-api/internal/application/analytics"
	"github.com/jhoicas/Agromercados-api/internal/application/auth"
	"github.com/jhoicas/Agromercados-api/internal/application/ports"
	"github.com/jhoicas/Agromercados-api/internal/application/usecase"
	"github.com/jhoicas/Agromercados-api/internal/infrastructure/cache"
	"github.com/jhoicas/Agromercados-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/Agromercados-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Agromercados-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Agromercados-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Agromercados-api/internal/interfaces/http"
	"github.com/jhoicas/Agromercados-api/pkg/config"
	"github.com/jhoicas/Agromercados-api/pkg/logger"
)

// @title                       Agromercados API
// @version                     1.0
// @description                 Directorio de mercados agropecuarios: mercados, productos, comentarios y estadísticas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET no configurado")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("db"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)
	scheduleRepo := postgres.NewMarketScheduleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	baseRepo := postgres.NewProductBaseRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché del snapshot global: opcional, sin Redis se recalcula en cada petición.
	var snapshotCache ports.SnapshotCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, estadísticas sin caché")
		} else {
			defer client.Close()
			snapshotCache = cache.NewRedisSnapshotCache(client)
		}
	}

	// Imágenes: opcional, sin almacenamiento las subidas responden 503.
	var imageStore ports.ImageStore
	if cfg.Storage.Enabled() {
		store, err := storage.NewMinioImageStore(ctx, cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("almacenamiento de imágenes no disponible")
		} else {
			imageStore = store
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	marketUC := usecase.NewMarketUseCase(marketRepo, scheduleRepo, productRepo, txRunner, imageStore, feed.NewCatalogXMLBuilder(""))
	productUC := usecase.NewProductUseCase(productRepo, baseRepo, marketRepo, commentRepo, imageStore)
	baseUC := usecase.NewProductBaseUseCase(baseRepo)
	commentUC := usecase.NewCommentUseCase(commentRepo, productRepo)

	statsUC := analytics.NewStatsUseCase(analytics.Repos{
		Users:    userRepo,
		Products: productRepo,
		Markets:  marketRepo,
		Comments: commentRepo,
		Bases:    baseRepo,
	}, snapshotCache, cfg.Stats.CacheTTL(), nil, log)
	reportUC := analytics.NewReportUseCase(statsUC, infrapdf.NewMarotoStatsReport(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    usecase.MaxImageBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Agromercados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		MarketUC:      marketUC,
		ProductUC:     productUC,
		ProductBaseUC: baseUC,
		CommentUC:     commentUC,
		StatsUC:       statsUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
