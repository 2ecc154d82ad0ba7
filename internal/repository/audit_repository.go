package repository

import (
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	GetByPegawaiID(pegawaiID uint) ([]model.AuditLog, error)
	GetByKaryawanID(karyawanID uint) ([]model.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db}
}

func (r *auditRepository) GetByPegawaiID(pegawaiID uint) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.Where("pegawai_id = ?", pegawaiID).Order("id DESC").Find(&logs).Error
	return logs, err
}

func (r *auditRepository) GetByKaryawanID(karyawanID uint) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.Where("karyawan_id = ?", karyawanID).Order("id DESC").Find(&logs).Error
	return logs, err
}
