package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lulusbagos/one-db-mitra-sub000/config"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/repository"
)

type AuthHandler struct {
	repo *repository.UserRepository
}

func NewAuthHandler(repo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}

	user, err := h.repo.GetByUsername(req.Username)
	if err != nil || !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Username atau password salah"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Username atau password salah"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	namaMitra := ""
	if user.Mitra != nil {
		namaMitra = user.Mitra.NamaMitra
	}
	return c.JSON(fiber.Map{
		"message": "Login berhasil",
		"token":   token,
		"data": fiber.Map{
			"username": user.Username,
			"nama":     user.Nama,
			"role":     user.Role.NamaRole,
			"mitra":    namaMitra,
		},
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	user, err := h.repo.GetByID(userID)
	if err != nil || !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}
	return c.JSON(fiber.Map{"message": "Token diperbarui", "token": token})
}

func generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      user.ID,
		"username":     user.Username,
		"nama":         user.Nama,
		"role":         user.Role.NamaRole,
		"access_level": user.Role.AccessLevel,
		"privileged":   user.Role.IsPrivileged,
		"exp":          time.Now().Add(time.Hour * 24).Unix(), // Token expired dalam 24 jam
	}
	// Scope NULL tidak ikut dimasukkan ke claims
	if user.MitraID != nil {
		claims["mitra_id"] = *user.MitraID
	}
	if user.DepartemenID != nil {
		claims["departemen_id"] = *user.DepartemenID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}
