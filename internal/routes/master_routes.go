package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/handler"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/middleware"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
)

func SetupMasterRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewMasterRepository(db)
	hdl := handler.NewMasterHandler(repo)

	api := app.Group("/api/master", middleware.Auth)
	api.Get("/mitra", hdl.GetMitra)
	api.Get("/mitra/:mitraId/departemen", hdl.GetDepartemen)
	api.Get("/departemen/:departemenId/seksi", hdl.GetSeksi)
	api.Get("/jabatan", hdl.GetJabatan)
}
