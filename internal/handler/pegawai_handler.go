package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

type PegawaiHandler struct {
	uc        *usecase.PegawaiUsecase
	repo      repository.PegawaiRepository
	auditRepo repository.AuditRepository
}

func NewPegawaiHandler(uc *usecase.PegawaiUsecase, repo repository.PegawaiRepository, auditRepo repository.AuditRepository) *PegawaiHandler {
	return &PegawaiHandler{uc: uc, repo: repo, auditRepo: auditRepo}
}

func (h *PegawaiHandler) GetAll(c *fiber.Ctx) error {
	search := c.Query("search")

	aktor := aktorDariClaims(c)
	var mitraID *uint
	if !aktor.Privileged {
		mitraID = aktor.MitraID // aktor ber-scope mitra hanya melihat mitranya
	}
	if q := c.Query("mitra_id"); q != "" && aktor.Privileged {
		if id, err := strconv.Atoi(q); err == nil {
			v := uint(id)
			mitraID = &v
		}
	}

	list, err := h.repo.GetAll(search, mitraID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data pegawai"})
	}
	return c.JSON(fiber.Map{"message": "Berhasil mengambil daftar pegawai", "data": list})
}

func (h *PegawaiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	pegawai, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pegawai tidak ditemukan"})
	}

	status, _ := h.repo.RiwayatStatus(pegawai.ID)
	mobilitas, _ := h.repo.RiwayatMobilitas(pegawai.NIK)
	audit, _ := h.auditRepo.GetByPegawaiID(pegawai.ID)

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil detail pegawai",
		"data": fiber.Map{
			"pegawai":   pegawai,
			"status":    status,
			"mobilitas": mobilitas,
			"audit":     audit,
		},
	})
}

// Simpan melayani create maupun update; semua aturan ada di usecase.
func (h *PegawaiHandler) Simpan(c *fiber.Ctx) error {
	var in usecase.PegawaiInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if id, err := strconv.Atoi(c.Params("id", "0")); err == nil && id > 0 {
		in.PegawaiID = uint(id)
	}

	result, err := h.uc.Simpan(in, aktorDariClaims(c))
	if err != nil {
		return jawabError(c, err)
	}

	pesan := "Data pegawai diperbarui"
	if result.Dibuat {
		pesan = "Pegawai berhasil didaftarkan"
	}
	return c.JSON(fiber.Map{"message": pesan, "data": result})
}
