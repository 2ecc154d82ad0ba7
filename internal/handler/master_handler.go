package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
)

type MasterHandler struct {
	repo repository.MasterRepository
}

func NewMasterHandler(repo repository.MasterRepository) *MasterHandler {
	return &MasterHandler{repo: repo}
}

func (h *MasterHandler) GetMitra(c *fiber.Ctx) error {
	mitra, err := h.repo.GetAllMitra()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data mitra"})
	}
	return c.JSON(fiber.Map{"message": "Berhasil mengambil daftar mitra", "data": mitra})
}

func (h *MasterHandler) GetDepartemen(c *fiber.Ctx) error {
	mitraID, err := strconv.Atoi(c.Params("mitraId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID mitra tidak valid"})
	}
	departemen, err := h.repo.GetDepartemenByMitraID(uint(mitraID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data departemen"})
	}
	return c.JSON(fiber.Map{"message": "Berhasil mengambil daftar departemen", "data": departemen})
}

func (h *MasterHandler) GetSeksi(c *fiber.Ctx) error {
	departemenID, err := strconv.Atoi(c.Params("departemenId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID departemen tidak valid"})
	}
	seksi, err := h.repo.GetSeksiByDepartemenID(uint(departemenID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data seksi"})
	}
	return c.JSON(fiber.Map{"message": "Berhasil mengambil daftar seksi", "data": seksi})
}

func (h *MasterHandler) GetJabatan(c *fiber.Ctx) error {
	jabatan, err := h.repo.GetAllJabatan()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data jabatan"})
	}
	return c.JSON(fiber.Map{"message": "Berhasil mengambil daftar jabatan", "data": jabatan})
}
