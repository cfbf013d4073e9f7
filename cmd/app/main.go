package main

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/ai"
	"github.com/wichananm65/meli-optimizer/internal/competitor"
	"github.com/wichananm65/meli-optimizer/internal/config"
	"github.com/wichananm65/meli-optimizer/internal/connection"
	"github.com/wichananm65/meli-optimizer/internal/keyword"
	"github.com/wichananm65/meli-optimizer/internal/logger"
	"github.com/wichananm65/meli-optimizer/internal/meli"
	"github.com/wichananm65/meli-optimizer/internal/middleware"
	"github.com/wichananm65/meli-optimizer/internal/optimization"
	"github.com/wichananm65/meli-optimizer/internal/product"
	"github.com/wichananm65/meli-optimizer/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	if err := ensureSchema(db); err != nil {
		log.Fatal("schema setup failed", zap.Error(err))
	}

	aiClient, err := ai.New(cfg.AI, nil)
	if err != nil {
		log.Fatal("AI client setup failed", zap.Error(err))
	}
	log.Info("AI provider selected", zap.String("provider", string(aiClient.Provider())))

	meliClient := meli.NewClient(cfg.MeliAPIURL, cfg.MeliTimeout, cfg.MeliRateLimit)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	connService := connection.NewService(connection.NewPostgresRepository(db))
	connHandler := connection.NewHandler(connService)

	productService := product.NewService(product.NewPostgresRepository(db), meliClient, cfg.SyncConcurrency)
	productHandler := product.NewHandler(productService, connService)

	competitorService := competitor.NewService(meliClient,
		competitor.NewQuestionAnalyzer(competitor.DefaultTaxonomy, competitor.DefaultAdvice))
	competitorHandler := competitor.NewHandler(competitorService, connService)

	trendCache := keyword.NewCache(meliClient, cfg.KeywordCacheTTL)
	keywordHandler := keyword.NewHandler(trendCache, connService, productService)

	optimizationService := optimization.NewService(optimization.NewPostgresRepository(db), productService, trendCache, aiClient)
	optimizationHandler := optimization.NewHandler(optimizationService, connService)

	app := fiber.New()
	setupCORS(app)
	app.Use(logger.Middleware(log))
	app.Use(middleware.Deadline(cfg.RequestTimeout))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	connHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	keywordHandler.RegisterProtectedRoutes(app)
	optimizationHandler.RegisterProtectedRoutes(app)
	competitorHandler.RegisterProtectedRoutes(app)

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}
