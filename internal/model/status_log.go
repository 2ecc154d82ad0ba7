package model

import "gorm.io/gorm"

type StatusTipe string

const (
	StatusNonaktif    StatusTipe = "nonaktif"
	StatusBlacklist   StatusTipe = "blacklist"
	StatusPelanggaran StatusTipe = "pelanggaran"
)

// StatusLog bersifat append-only: satu baris per deklarasi status.
// Event masih "berjalan" selama TglSelesai masih NULL. Blacklist yang
// berjalan memblokir rekrut ulang NIK tersebut di SEMUA mitra.
type StatusLog struct {
	gorm.Model
	PegawaiID   uint       `json:"pegawai_id" gorm:"not null;index"`
	NIK         string     `json:"nik" gorm:"column:nik;size:50;not null;index"` // denormalisasi untuk cek lintas mitra
	Tipe        StatusTipe `json:"tipe" gorm:"size:20;not null;index"`
	Kategori    string     `json:"kategori"`
	Alasan      string     `json:"alasan" gorm:"not null"`
	TglMulai    string     `json:"tgl_mulai"` // Format YYYY-MM-DD
	TglSelesai  *string    `json:"tgl_selesai"`
	DicatatOleh string     `json:"dicatat_oleh"`
}
