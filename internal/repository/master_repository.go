package repository

import (
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"

	"gorm.io/gorm"
)

// MasterRepository = read model direktori (mitra/departemen/seksi/jabatan).
// Pemeliharaan direktori sendiri ada di sistem lain; di sini cukup baca.
type MasterRepository interface {
	GetAllMitra() ([]model.Mitra, error)
	GetDepartemenByMitraID(mitraID uint) ([]model.Departemen, error)
	GetSeksiByDepartemenID(departemenID uint) ([]model.Seksi, error)
	GetAllJabatan() ([]model.Jabatan, error)
}

type masterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) MasterRepository {
	return &masterRepository{db}
}

func (r *masterRepository) GetAllMitra() ([]model.Mitra, error) {
	var mitra []model.Mitra
	err := r.db.Where("is_active = ?", true).Order("nama_mitra").Find(&mitra).Error
	return mitra, err
}

func (r *masterRepository) GetDepartemenByMitraID(mitraID uint) ([]model.Departemen, error) {
	var departemen []model.Departemen
	err := r.db.Preload("Seksi").Where("mitra_id = ?", mitraID).Order("nama_departemen").Find(&departemen).Error
	return departemen, err
}

func (r *masterRepository) GetSeksiByDepartemenID(departemenID uint) ([]model.Seksi, error) {
	var seksi []model.Seksi
	err := r.db.Where("departemen_id = ?", departemenID).Order("nama_seksi").Find(&seksi).Error
	return seksi, err
}

func (r *masterRepository) GetAllJabatan() ([]model.Jabatan, error) {
	var jabatan []model.Jabatan
	err := r.db.Order("level DESC, nama_jabatan").Find(&jabatan).Error
	return jabatan, err
}
