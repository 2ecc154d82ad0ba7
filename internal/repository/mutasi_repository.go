package repository

import (
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"

	"gorm.io/gorm"
)

type MutasiRepository interface {
	FindByID(id uint) (*model.MutasiRequest, error)
	GetAll(status string, mitraID *uint) ([]model.MutasiRequest, error)
}

type mutasiRepository struct {
	db *gorm.DB
}

func NewMutasiRepository(db *gorm.DB) MutasiRepository {
	return &mutasiRepository{db}
}

func (r *mutasiRepository) FindByID(id uint) (*model.MutasiRequest, error) {
	var req model.MutasiRequest
	err := r.db.Preload("AsalMitra").Preload("TujuanMitra").First(&req, id).Error
	return &req, err
}

// GetAll: mitra melihat pengajuan yang melibatkan dirinya (asal maupun tujuan).
func (r *mutasiRepository) GetAll(status string, mitraID *uint) ([]model.MutasiRequest, error) {
	var rows []model.MutasiRequest
	query := r.db.Preload("AsalMitra").Preload("TujuanMitra")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if mitraID != nil {
		query = query.Where("asal_mitra_id = ? OR tujuan_mitra_id = ?", *mitraID, *mitraID)
	}

	err := query.Order("id DESC").Find(&rows).Error
	return rows, err
}
