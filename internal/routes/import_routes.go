package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/handler"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/middleware"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

func SetupImportRoutes(app *fiber.App, db *gorm.DB, log *logrus.Logger) {
	pegawaiUC := usecase.NewPegawaiUsecase(db)
	uc := usecase.NewImportUsecase(db, pegawaiUC, log)
	hdl := handler.NewImportHandler(uc)

	api := app.Group("/api/import", middleware.Auth, middleware.Permission(db, "pegawai_import"))
	api.Get("/template", hdl.Template)
	api.Post("/pegawai/preview", hdl.Preview)
	api.Post("/pegawai", hdl.Upload)
}
