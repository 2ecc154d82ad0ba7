package usecase

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// NIKTerblacklist: sebuah NIK dianggap terblacklist sistem-wide kalau ADA
// pegawai ber-NIK itu (mitra manapun) dengan event blacklist yang masih
// berjalan (tgl_selesai NULL).
func NIKTerblacklist(db *gorm.DB, nik string) (bool, error) {
	var count int64
	err := db.Model(&model.StatusLog{}).
		Where("nik = ? AND tipe = ? AND tgl_selesai IS NULL", nik, model.StatusBlacklist).
		Count(&count).Error
	return count > 0, err
}

// TglNonaktifTerakhir mengembalikan tanggal mulai event nonaktif paling baru
// untuk sebuah NIK di mitra manapun. Kosong = belum pernah nonaktif.
func TglNonaktifTerakhir(db *gorm.DB, nik string) (string, error) {
	var log model.StatusLog
	err := db.Where("nik = ? AND tipe = ?", nik, model.StatusNonaktif).
		Order("tgl_mulai DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return log.TglMulai, nil
}

type StatusUsecase struct {
	db *gorm.DB
}

func NewStatusUsecase(db *gorm.DB) *StatusUsecase {
	return &StatusUsecase{db: db}
}

type StatusInput struct {
	Alasan   string `json:"alasan"`
	Kategori string `json:"kategori"`
	TglMulai string `json:"tgl_mulai"` // opsional, default hari ini
}

func (in *StatusInput) tglMulaiAtauHariIni() string {
	t := NormalisasiTanggal(in.TglMulai)
	if t == "" {
		t = time.Now().Format("2006-01-02")
	}
	return t
}

// Nonaktifkan: active -> inactive. Wajib ada alasan. Menulis StatusLog
// nonaktif + AuditLog + mematikan flag aktif dalam satu transaksi.
func (u *StatusUsecase) Nonaktifkan(pegawaiID uint, in StatusInput, aktor Aktor) error {
	if strings.TrimSpace(in.Alasan) == "" {
		return apperror.Validation("alasan", "Alasan nonaktif wajib diisi")
	}
	return u.db.Transaction(func(tx *gorm.DB) error {
		pegawai, err := muatPegawaiTerkunci(tx, pegawaiID)
		if err != nil {
			return err
		}
		if !aktor.ScopeMitra(pegawai.MitraID) {
			return apperror.New(apperror.CodeAuthorization, "Akses ditolak")
		}

		tgl := in.tglMulaiAtauHariIni()
		log := model.StatusLog{
			PegawaiID:   pegawai.ID,
			NIK:         pegawai.NIK,
			Tipe:        model.StatusNonaktif,
			Kategori:    in.Kategori,
			Alasan:      strings.TrimSpace(in.Alasan),
			TglMulai:    tgl,
			DicatatOleh: aktor.Username,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		diff := NewAuditDiff()
		diff.Bool("is_active", pegawai.IsActive, false)
		diff.TanggalPtr("tgl_nonaktif", pegawai.TglNonaktif, &tgl)
		diff.Teks("alasan_nonaktif", pegawai.AlasanNonaktif, in.Alasan)

		pegawai.IsActive = false
		pegawai.TglNonaktif = &tgl
		pegawai.AlasanNonaktif = strings.TrimSpace(in.Alasan)
		if err := tx.Save(pegawai).Error; err != nil {
			return err
		}
		return tulisAudit(tx, "pegawai", &pegawai.ID, &pegawai.KaryawanID, aktor, "status", diff)
	})
}

// Blacklist: memaksa pegawai nonaktif dan membuka event blacklist tanpa
// tanggal selesai. Aktor biasa ditolak kalau NIK-nya sudah terblacklist.
func (u *StatusUsecase) Blacklist(pegawaiID uint, in StatusInput, aktor Aktor) error {
	if strings.TrimSpace(in.Alasan) == "" {
		return apperror.Validation("alasan", "Alasan blacklist wajib diisi")
	}
	return u.db.Transaction(func(tx *gorm.DB) error {
		pegawai, err := muatPegawaiTerkunci(tx, pegawaiID)
		if err != nil {
			return err
		}
		if !aktor.ScopeMitra(pegawai.MitraID) {
			return apperror.New(apperror.CodeAuthorization, "Akses ditolak")
		}

		if !aktor.Privileged {
			kena, err := NIKTerblacklist(tx, pegawai.NIK)
			if err != nil {
				return err
			}
			if kena {
				return apperror.Conflict("nik", "NIK "+pegawai.NIK+" sudah dalam status blacklist")
			}
		}

		log := model.StatusLog{
			PegawaiID:   pegawai.ID,
			NIK:         pegawai.NIK,
			Tipe:        model.StatusBlacklist,
			Kategori:    in.Kategori,
			Alasan:      strings.TrimSpace(in.Alasan),
			TglMulai:    in.tglMulaiAtauHariIni(),
			DicatatOleh: aktor.Username,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		diff := NewAuditDiff()
		diff.Bool("is_active", pegawai.IsActive, false)
		diff.Teks("status", "", string(model.StatusBlacklist))

		pegawai.IsActive = false
		if err := tx.Save(pegawai).Error; err != nil {
			return err
		}
		return tulisAudit(tx, "pegawai", &pegawai.ID, &pegawai.KaryawanID, aktor, "status", diff)
	})
}

// CabutBlacklist: khusus aktor privileged. Menutup event blacklist yang
// masih berjalan (set tgl_selesai = hari ini), TANPA mengaktifkan kembali
// pegawainya.
func (u *StatusUsecase) CabutBlacklist(pegawaiID uint, aktor Aktor) error {
	if !aktor.Privileged {
		return apperror.New(apperror.CodeAuthorization, "Akses ditolak")
	}
	return u.db.Transaction(func(tx *gorm.DB) error {
		pegawai, err := muatPegawaiTerkunci(tx, pegawaiID)
		if err != nil {
			return err
		}

		var log model.StatusLog
		err = tx.Where("nik = ? AND tipe = ? AND tgl_selesai IS NULL", pegawai.NIK, model.StatusBlacklist).
			Order("tgl_mulai DESC").
			First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound, "Tidak ada blacklist berjalan untuk NIK "+pegawai.NIK)
		}
		if err != nil {
			return err
		}

		tgl := time.Now().Format("2006-01-02")
		log.TglSelesai = &tgl
		if err := tx.Save(&log).Error; err != nil {
			return err
		}

		diff := NewAuditDiff()
		diff.Teks("status", string(model.StatusBlacklist), "")
		return tulisAudit(tx, "pegawai", &pegawai.ID, &pegawai.KaryawanID, aktor, "status", diff)
	})
}

// CatatPelanggaran: ortogonal terhadap aktif/nonaktif, tidak menonaktifkan.
func (u *StatusUsecase) CatatPelanggaran(pegawaiID uint, in StatusInput, aktor Aktor) error {
	if strings.TrimSpace(in.Alasan) == "" {
		return apperror.Validation("alasan", "Uraian pelanggaran wajib diisi")
	}
	return u.db.Transaction(func(tx *gorm.DB) error {
		pegawai, err := muatPegawaiTerkunci(tx, pegawaiID)
		if err != nil {
			return err
		}
		if !aktor.ScopeMitra(pegawai.MitraID) {
			return apperror.New(apperror.CodeAuthorization, "Akses ditolak")
		}

		log := model.StatusLog{
			PegawaiID:   pegawai.ID,
			NIK:         pegawai.NIK,
			Tipe:        model.StatusPelanggaran,
			Kategori:    in.Kategori,
			Alasan:      strings.TrimSpace(in.Alasan),
			TglMulai:    in.tglMulaiAtauHariIni(),
			DicatatOleh: aktor.Username,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		diff := NewAuditDiff()
		diff.Teks("pelanggaran", "", in.Kategori+": "+strings.TrimSpace(in.Alasan))
		return tulisAudit(tx, "pegawai", &pegawai.ID, &pegawai.KaryawanID, aktor, "status", diff)
	})
}

func muatPegawaiTerkunci(tx *gorm.DB, pegawaiID uint) (*model.Pegawai, error) {
	var pegawai model.Pegawai
	err := kunciUpdate(tx).First(&pegawai, pegawaiID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.CodeNotFound, "Pegawai tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}
	return &pegawai, nil
}
