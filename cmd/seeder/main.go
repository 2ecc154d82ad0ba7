package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/lulusbagos/one-db-mitra-sub000/config"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("File .env tidak ditemukan, memakai environment variables sistem")
	}

	config.ConnectDB()
	if err := database.Seed(config.DB); err != nil {
		logrus.WithError(err).Fatal("Seeding gagal")
	}
}
