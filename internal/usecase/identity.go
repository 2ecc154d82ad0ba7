package usecase

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// CariKaryawan mencari satu Karyawan yang sudah memegang NIK KTP atau No KK
// tersebut. Match NIK KTP diutamakan. nil tanpa error = belum ada, pemanggil
// diharapkan membuat Karyawan baru.
func CariKaryawan(db *gorm.DB, nikKTP, noKK string) (*model.Karyawan, error) {
	nikKTP = strings.TrimSpace(nikKTP)
	noKK = strings.TrimSpace(noKK)

	if nikKTP != "" {
		var k model.Karyawan
		err := db.Where("nik_ktp = ?", nikKTP).First(&k).Error
		if err == nil {
			return &k, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if noKK != "" {
		var k model.Karyawan
		err := db.Where("no_kk = ?", noKK).First(&k).Error
		if err == nil {
			return &k, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// Konflik = satu pegawai lain yang karyawannya sudah memegang nomor
// identitas yang sedang disimpan.
type Konflik struct {
	Field     string // "nik_ktp" | "no_kk"
	Nilai     string
	NIK       string
	NamaMitra string
}

func (k Konflik) Pesan() string {
	return fmt.Sprintf("%s %s sudah dipakai pegawai NIK %s di %s", k.Field, k.Nilai, k.NIK, k.NamaMitra)
}

// DeteksiKonflik mencari semua Pegawai LAIN (di mitra manapun) yang
// karyawannya memegang salah satu nomor identitas. Dikecualikan:
// pegawai yang sedang diedit sendiri, dan pegawai yang NIK-nya sama dengan
// NIK yang sedang disimpan (self-match = re-employment yang sah, bukan konflik).
func DeteksiKonflik(db *gorm.DB, nikKTP, noKK, nik string, excludePegawaiID uint) ([]Konflik, error) {
	nikKTP = strings.TrimSpace(nikKTP)
	noKK = strings.TrimSpace(noKK)
	if nikKTP == "" && noKK == "" {
		return nil, nil
	}

	type baris struct {
		PegawaiID uint    `gorm:"column:pegawai_id"`
		NIK       string  `gorm:"column:nik"`
		NIKKTP    *string `gorm:"column:nik_ktp"`
		NoKK      *string `gorm:"column:no_kk"`
		NamaMitra string  `gorm:"column:nama_mitra"`
	}
	var hasil []baris
	q := db.Table("pegawais").
		Select("pegawais.id AS pegawai_id, pegawais.nik AS nik, karyawans.nik_ktp AS nik_ktp, karyawans.no_kk AS no_kk, mitras.nama_mitra AS nama_mitra").
		Joins("JOIN karyawans ON karyawans.id = pegawais.karyawan_id").
		Joins("JOIN mitras ON mitras.id = pegawais.mitra_id").
		Where("pegawais.deleted_at IS NULL")
	switch {
	case nikKTP != "" && noKK != "":
		q = q.Where("karyawans.nik_ktp = ? OR karyawans.no_kk = ?", nikKTP, noKK)
	case nikKTP != "":
		q = q.Where("karyawans.nik_ktp = ?", nikKTP)
	default:
		q = q.Where("karyawans.no_kk = ?", noKK)
	}
	if err := q.Scan(&hasil).Error; err != nil {
		return nil, err
	}

	var konflik []Konflik
	for _, b := range hasil {
		if b.PegawaiID == excludePegawaiID {
			continue
		}
		if b.NIK == nik {
			continue
		}
		if nikKTP != "" && b.NIKKTP != nil && *b.NIKKTP == nikKTP {
			konflik = append(konflik, Konflik{Field: "nik_ktp", Nilai: nikKTP, NIK: b.NIK, NamaMitra: b.NamaMitra})
			continue
		}
		if noKK != "" && b.NoKK != nil && *b.NoKK == noKK {
			konflik = append(konflik, Konflik{Field: "no_kk", Nilai: noKK, NIK: b.NIK, NamaMitra: b.NamaMitra})
		}
	}
	return konflik, nil
}

// errKonflikIdentitas membungkus konflik pertama jadi error field-level.
func errKonflikIdentitas(konflik []Konflik) error {
	if len(konflik) == 0 {
		return nil
	}
	return apperror.Conflict(konflik[0].Field, konflik[0].Pesan())
}
