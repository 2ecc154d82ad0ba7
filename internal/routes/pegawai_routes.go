package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/handler"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/middleware"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

func SetupPegawaiRoutes(app *fiber.App, db *gorm.DB) {
	pegawaiUC := usecase.NewPegawaiUsecase(db)
	statusUC := usecase.NewStatusUsecase(db)
	repo := repository.NewPegawaiRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	hdl := handler.NewPegawaiHandler(pegawaiUC, repo, auditRepo)
	statusHdl := handler.NewStatusHandler(statusUC)

	api := app.Group("/api/pegawai", middleware.Auth)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetDetail)
	api.Post("/", middleware.Permission(db, "pegawai_tulis"), hdl.Simpan)
	api.Put("/:id", middleware.Permission(db, "pegawai_tulis"), hdl.Simpan)

	// Transisi status
	api.Post("/:id/nonaktif", middleware.Permission(db, "pegawai_tulis"), statusHdl.Nonaktifkan)
	api.Post("/:id/blacklist", middleware.Permission(db, "pegawai_blacklist"), statusHdl.Blacklist)
	api.Post("/:id/pelanggaran", middleware.Permission(db, "pegawai_tulis"), statusHdl.CatatPelanggaran)
	api.Post("/:id/cabut-blacklist", statusHdl.CabutBlacklist) // otorisasi privileged dicek di usecase
}
