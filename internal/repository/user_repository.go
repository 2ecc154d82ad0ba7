package repository

import (
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	// Preload Role dan Mitra agar claims token bisa diisi lengkap
	err := r.db.Preload("Role.Permissions").Preload("Mitra").Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Role.Permissions").Preload("Mitra").First(&user, id).Error
	return &user, err
}
