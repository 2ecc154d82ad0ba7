package repository

import (
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"

	"gorm.io/gorm"
)

type PegawaiRepository interface {
	FindByID(id uint) (*model.Pegawai, error)
	FindByNIK(nik string) ([]model.Pegawai, error)
	GetAll(search string, mitraID *uint) ([]model.Pegawai, error)
	RiwayatStatus(pegawaiID uint) ([]model.StatusLog, error)
	RiwayatMobilitas(nik string) ([]model.Mobilitas, error)
}

type pegawaiRepository struct {
	db *gorm.DB
}

func NewPegawaiRepository(db *gorm.DB) PegawaiRepository {
	return &pegawaiRepository{db}
}

func (r *pegawaiRepository) FindByID(id uint) (*model.Pegawai, error) {
	var pegawai model.Pegawai
	// Preload lengkap untuk halaman detail
	err := r.db.Preload("Karyawan.Pendidikan").Preload("Mitra").
		Preload("Departemen").Preload("Seksi").Preload("Jabatan").
		First(&pegawai, id).Error
	return &pegawai, err
}

func (r *pegawaiRepository) FindByNIK(nik string) ([]model.Pegawai, error) {
	var pegawai []model.Pegawai
	err := r.db.Preload("Mitra").Where("nik = ?", nik).Order("id DESC").Find(&pegawai).Error
	return pegawai, err
}

func (r *pegawaiRepository) GetAll(search string, mitraID *uint) ([]model.Pegawai, error) {
	var pegawai []model.Pegawai
	query := r.db.Preload("Karyawan").Preload("Mitra").Preload("Departemen").Preload("Jabatan")

	if mitraID != nil {
		query = query.Where("mitra_id = ?", *mitraID)
	}
	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Joins("JOIN karyawans ON karyawans.id = pegawais.karyawan_id").
			Where("pegawais.nik LIKE ? OR karyawans.nama LIKE ?", searchPattern, searchPattern)
	}

	err := query.Find(&pegawai).Error
	return pegawai, err
}

func (r *pegawaiRepository) RiwayatStatus(pegawaiID uint) ([]model.StatusLog, error) {
	var logs []model.StatusLog
	err := r.db.Where("pegawai_id = ?", pegawaiID).Order("id DESC").Find(&logs).Error
	return logs, err
}

func (r *pegawaiRepository) RiwayatMobilitas(nik string) ([]model.Mobilitas, error) {
	var rows []model.Mobilitas
	err := r.db.Where("nik = ?", nik).Order("id DESC").Find(&rows).Error
	return rows, err
}
