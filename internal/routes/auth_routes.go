package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/handler"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/middleware"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewUserRepository(db)
	hdl := handler.NewAuthHandler(repo)

	app.Post("/api/login", hdl.Login)
	app.Post("/api/refresh-token", middleware.Auth, hdl.RefreshToken)
}
