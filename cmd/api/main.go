package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/lancechain/registry_be/internal/config"
	"github.com/lancechain/registry_be/internal/db"
	"github.com/lancechain/registry_be/internal/handlers"
	"github.com/lancechain/registry_be/internal/realtime"
	"github.com/lancechain/registry_be/internal/registry"
	"github.com/lancechain/registry_be/internal/services/treasury"
	"github.com/lancechain/registry_be/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	st := store.New(gdb)
	if err := st.AutoMigrate(); err != nil {
		log.Fatal(err)
	}

	reg := registry.New(registry.Options{
		Verifier: registry.EthVerifier{},
		Fees: registry.Fees{
			Registration: cfg.RegistrationFee,
			Project:      cfg.ProjectFee,
			Proposal:     cfg.ProposalFee,
		},
		MaxSignatureAge: cfg.SigMaxAgeSec,
	})
	if err := st.Load(reg); err != nil {
		log.Fatal(err)
	}
	log.Printf("Registry restored: %d projects", reg.ProjectCount())

	rdb := realtime.NewRedis()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis not reachable, events stay local:", err)
		rdb = nil
	}

	hub := realtime.NewHub()
	go hub.Run()

	tr := treasury.NewService(gdb)
	profileH := handlers.NewProfileHandler(reg, st, tr, hub, rdb, cfg.JWTSecret, cfg.JWTExpiresMin)
	projectH := handlers.NewProjectHandler(reg, st, tr, hub, rdb)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Length",
	}))

	handlers.RegisterRoutes(app, profileH, projectH, cfg.JWTSecret)

	// Registry event feed (no JWT: events carry no gated data)
	app.Get("/ws/events", websocket.New(realtime.EventsSocket(hub)))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
