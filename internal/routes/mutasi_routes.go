package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/handler"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/middleware"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

func SetupMutasiRoutes(app *fiber.App, db *gorm.DB, notifier usecase.Notifier, log *logrus.Logger) {
	uc := usecase.NewMutasiUsecase(db, notifier, log)
	repo := repository.NewMutasiRepository(db)
	hdl := handler.NewMutasiHandler(uc, repo)

	api := app.Group("/api/mutasi", middleware.Auth)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetDetail)
	api.Post("/", middleware.Permission(db, "mutasi_ajukan"), hdl.Ajukan)
	api.Post("/:id/keputusan", hdl.Putuskan) // otoritas puncak mitra asal dicek di usecase
}
