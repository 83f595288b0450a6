package main

import (
	"log"
	"strconv"

	"passkey-server/auth"
	"passkey-server/store"

	"github.com/aidarkhanov/nanoid/v2"
	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type config struct {
	Port          int    `env:"PORT" envDefault:"7676"`
	RPID          string `env:"RP_ID" envDefault:"localhost"`
	RPOrigin      string `env:"RP_ORIGIN" envDefault:"http://localhost:7676"`
	RPDisplayName string `env:"RP_DISPLAY_NAME" envDefault:"Passkey Server"`
	DataDir       string `env:"DATA_DIR" envDefault:"data"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal("parsing config: ", err)
	}

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Fatal("opening store: ", err)
	}
	defer db.Close()

	engine, err := auth.NewEngine(auth.EngineConfig{
		RPID:          cfg.RPID,
		RPOrigin:      cfg.RPOrigin,
		RPDisplayName: cfg.RPDisplayName,
	})
	if err != nil {
		log.Fatal("creating ceremony engine: ", err)
	}

	orchestrator, err := auth.NewOrchestrator(auth.OrchestratorParams{
		Engine:      engine,
		Identities:  db,
		Credentials: db,
		Sessions:    db,
	})
	if err != nil {
		log.Fatal("creating orchestrator: ", err)
	}

	app := newApp(orchestrator)
	defer app.Shutdown()

	log.Fatal(app.Listen(":" + strconv.Itoa(cfg.Port)))
}

func newApp(orchestrator *auth.Orchestrator) *fiber.App {
	app := fiber.New()

	app.Use(requestid.New(requestid.Config{Generator: newRequestID}))
	app.Use(logger.New())
	app.Use(recover.New())

	attachClientRoutes(app)
	auth.AttachCeremonyRoutes(app, orchestrator)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	return app
}

func newRequestID() string {
	id, err := nanoid.New()
	if err != nil {
		return ""
	}
	return id
}
