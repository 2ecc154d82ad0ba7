package model

import "gorm.io/gorm"

// Pegawai = satu ikatan kerja (karyawan x mitra).
// NIK unik per mitra, tapi NIK yang sama boleh muncul lagi di mitra lain
// sepanjang riwayat karir orang tersebut.
type Pegawai struct {
	gorm.Model
	KaryawanID   uint   `json:"karyawan_id" gorm:"not null;index"`
	MitraID      uint   `json:"mitra_id" gorm:"not null;uniqueIndex:idx_pegawai_nik_mitra"`
	NIK          string `json:"nik" gorm:"column:nik;size:50;not null;uniqueIndex:idx_pegawai_nik_mitra;index"`
	DepartemenID *uint  `json:"departemen_id"`
	SeksiID      *uint  `json:"seksi_id"`
	JabatanID    *uint  `json:"jabatan_id"`

	TglMasuk       string  `json:"tgl_masuk"` // Format YYYY-MM-DD
	TglAktif       string  `json:"tgl_aktif"`
	TglNonaktif    *string `json:"tgl_nonaktif"`
	AlasanNonaktif string  `json:"alasan_nonaktif"`
	IsActive       bool    `json:"is_active" gorm:"default:true"`

	// Relasi
	Karyawan   Karyawan    `json:"karyawan" gorm:"foreignKey:KaryawanID"`
	Mitra      Mitra       `json:"mitra" gorm:"foreignKey:MitraID"`
	Departemen *Departemen `json:"departemen" gorm:"foreignKey:DepartemenID"`
	Seksi      *Seksi      `json:"seksi" gorm:"foreignKey:SeksiID"`
	Jabatan    *Jabatan    `json:"jabatan" gorm:"foreignKey:JabatanID"`
	StatusLog  []StatusLog `json:"status_log"`
	Mobilitas  []Mobilitas `json:"mobilitas"`
}
