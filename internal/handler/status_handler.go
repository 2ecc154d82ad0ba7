package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

type StatusHandler struct {
	uc *usecase.StatusUsecase
}

func NewStatusHandler(uc *usecase.StatusUsecase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

func (h *StatusHandler) Nonaktifkan(c *fiber.Ctx) error {
	return h.proses(c, h.uc.Nonaktifkan, "Pegawai dinonaktifkan")
}

func (h *StatusHandler) Blacklist(c *fiber.Ctx) error {
	return h.proses(c, h.uc.Blacklist, "Pegawai masuk blacklist")
}

func (h *StatusHandler) CatatPelanggaran(c *fiber.Ctx) error {
	return h.proses(c, h.uc.CatatPelanggaran, "Pelanggaran dicatat")
}

func (h *StatusHandler) CabutBlacklist(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}
	if err := h.uc.CabutBlacklist(uint(id), aktorDariClaims(c)); err != nil {
		return jawabError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Blacklist dicabut"})
}

func (h *StatusHandler) proses(c *fiber.Ctx, fn func(uint, usecase.StatusInput, usecase.Aktor) error, pesan string) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	var in usecase.StatusInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}

	if err := fn(uint(id), in, aktorDariClaims(c)); err != nil {
		return jawabError(c, err)
	}
	return c.JSON(fiber.Map{"message": pesan})
}
