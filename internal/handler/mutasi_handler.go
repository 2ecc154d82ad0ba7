package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

type MutasiHandler struct {
	uc   *usecase.MutasiUsecase
	repo repository.MutasiRepository
}

func NewMutasiHandler(uc *usecase.MutasiUsecase, repo repository.MutasiRepository) *MutasiHandler {
	return &MutasiHandler{uc: uc, repo: repo}
}

func (h *MutasiHandler) Ajukan(c *fiber.Ctx) error {
	var in usecase.AjukanMutasiInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}

	req, err := h.uc.Ajukan(in, aktorDariClaims(c))
	if err != nil {
		return jawabError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pengajuan mutasi berhasil dikirim", "data": req})
}

func (h *MutasiHandler) GetAll(c *fiber.Ctx) error {
	aktor := aktorDariClaims(c)
	var mitraID *uint
	if !aktor.Privileged {
		mitraID = aktor.MitraID
	}

	list, err := h.repo.GetAll(c.Query("status"), mitraID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data mutasi"})
	}
	return c.JSON(fiber.Map{"message": "Berhasil mengambil daftar mutasi", "data": list})
}

func (h *MutasiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}
	req, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pengajuan mutasi tidak ditemukan"})
	}
	return c.JSON(fiber.Map{"message": "Berhasil mengambil detail mutasi", "data": req})
}

func (h *MutasiHandler) Putuskan(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	var in usecase.KeputusanMutasiInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}

	if err := h.uc.Putuskan(uint(id), in, aktorDariClaims(c)); err != nil {
		return jawabError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Keputusan mutasi tersimpan"})
}
