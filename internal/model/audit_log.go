package model

import "gorm.io/gorm"

// AuditLog bersifat append-only: satu baris per field yang berubah.
// Tidak pernah di-update atau dihapus. CreatedAt = waktu perubahan (UTC).
type AuditLog struct {
	gorm.Model
	PegawaiID  *uint  `json:"pegawai_id" gorm:"index"`
	KaryawanID *uint  `json:"karyawan_id" gorm:"index"`
	Entitas    string `json:"entitas" gorm:"size:30;not null"` // "pegawai" | "karyawan"
	Field      string `json:"field" gorm:"size:60;not null"`
	NilaiLama  string `json:"nilai_lama"`
	NilaiBaru  string `json:"nilai_baru"`
	Aktor      string `json:"aktor"`
	Sumber     string `json:"sumber" gorm:"size:20"` // "form" | "import" | "status" | "mutasi"
}
