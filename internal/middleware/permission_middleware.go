package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// Permission mengecek permission role ke database. Role privileged
// (Super Admin) lolos tanpa cek.
func Permission(db *gorm.DB, requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Role tidak valid"})
		}

		if priv, ok := c.Locals("privileged").(bool); ok && priv {
			return c.Next()
		}

		var role model.Role
		if err := db.Preload("Permissions").Where("nama_role = ?", userRole).First(&role).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memvalidasi permission"})
		}
		if role.IsPrivileged {
			return c.Next()
		}

		isAllowed := false
		for _, p := range role.Permissions {
			if p.NamaPermission == requiredPermission {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Anda tidak memiliki izin " + requiredPermission})
		}

		return c.Next()
	}
}
