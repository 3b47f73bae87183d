package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pokemon-game-server/config"
	"pokemon-game-server/handlers"
	"pokemon-game-server/middleware"
	"pokemon-game-server/services"
	"pokemon-game-server/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	seed := uint64(cfg.RandomSeed)
	if seed == 0 {
		if seed, err = utils.NewSeed(); err != nil {
			log.Fatal("failed to seed random source:", err)
		}
	} else {
		log.Printf("⚠️  RANDOM_SEED=%d set, catches and battles are reproducible", cfg.RandomSeed)
	}
	rng := utils.NewLockedRand(seed)

	catalog := services.NewCatalogClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, cfg.CatalogMaxID, rng)

	// Battle history is optional; sessions themselves stay in memory.
	var recorder services.BattleRecorder
	var history services.BattleHistory
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		gormRecorder := services.NewGormBattleRecorder(db)
		if err := gormRecorder.Migrate(); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
		recorder, history = gormRecorder, gormRecorder
	} else {
		log.Println("⚠️  DATABASE_URL not set, battle history disabled")
	}

	gameService := services.NewGameService(services.NewSessionStore(), catalog, rng, recorder)

	var sched gocron.Scheduler
	if cfg.StatsInterval > 0 {
		if sched, err = gameService.StartStatsScheduler(cfg.StatsInterval); err != nil {
			log.Fatal("failed to start stats scheduler:", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName: "Pokemon Game Server",
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())

	// Browsers reject credentials with a wildcard origin, and fiber's cors
	// refuses that combination outright.
	origins := strings.Join(cfg.AllowedOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: !cfg.WildcardOrigins(),
		MaxAge:           86400,
	}))

	handlers.SetupStaticRoutes(app, cfg.StaticDir)
	handlers.SetupGameRoutes(app, gameService, history)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	log.Printf("✅ Server running on http://localhost%s", addr)
	log.Printf("✅ Catalog: %s (ids 1-%d, timeout %s)", cfg.CatalogBaseURL, cfg.CatalogMaxID, cfg.CatalogTimeout)
	log.Printf("✅ CORS configured for origins: %s", origins)

	<-ctx.Done()
	log.Println("Shutting down server...")

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
