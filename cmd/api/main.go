package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/lulusbagos/one-db-mitra-sub000/config"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/notifier"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/routes"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Warn("File .env tidak ditemukan, memakai environment variables sistem")
	}

	config.ConnectDB()
	log.Info("Database terhubung")

	app := fiber.New()

	// Middleware Global
	app.Use(cors.New())
	app.Use(logger.New())

	// Email notifikasi mutasi opsional, aktif kalau SMTP_HOST di-set
	var notif usecase.Notifier
	if mailer := notifier.NewMailer(log); mailer != nil {
		notif = mailer
	}

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupPegawaiRoutes(app, config.DB)
	routes.SetupMutasiRoutes(app, config.DB, notif, log)
	routes.SetupImportRoutes(app, config.DB, log)
	routes.SetupMasterRoutes(app, config.DB)

	port := config.GetEnv("APP_PORT", "3000")
	log.Info("Server siap di port :" + port)
	if err := app.Listen(":" + port); err != nil {
		log.WithError(err).Fatal("Server berhenti")
	}
}
