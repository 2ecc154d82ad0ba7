package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

// aktorDariClaims merakit usecase.Aktor dari claims JWT yang disimpan Auth
// middleware di Locals. Satu-satunya tempat konteks pelaku dibentuk.
func aktorDariClaims(c *fiber.Ctx) usecase.Aktor {
	aktor := usecase.Aktor{}
	if v, ok := c.Locals("user_id").(float64); ok {
		aktor.UserID = uint(v)
	}
	if v, ok := c.Locals("username").(string); ok {
		aktor.Username = v
	}
	if v, ok := c.Locals("nama").(string); ok {
		aktor.Nama = v
	}
	if v, ok := c.Locals("role").(string); ok {
		aktor.Role = v
	}
	if v, ok := c.Locals("access_level").(float64); ok {
		aktor.AccessLevel = int(v)
	}
	if v, ok := c.Locals("privileged").(bool); ok {
		aktor.Privileged = v
	}
	if v, ok := c.Locals("mitra_id").(float64); ok {
		id := uint(v)
		aktor.MitraID = &id
	}
	if v, ok := c.Locals("departemen_id").(float64); ok {
		id := uint(v)
		aktor.DepartemenID = &id
	}
	return aktor
}

// jawabError memetakan taksonomi apperror ke status HTTP.
func jawabError(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	if field := apperror.GetField(err); field != "" {
		body["field"] = field
	}

	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case apperror.CodeConflict:
		return c.Status(fiber.StatusConflict).JSON(body)
	case apperror.CodeAuthorization:
		return c.Status(fiber.StatusForbidden).JSON(body)
	case apperror.CodeNotFound:
		return c.Status(fiber.StatusNotFound).JSON(body)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan internal"})
	}
}
