package model

import "gorm.io/gorm"

type Klasifikasi string

const (
	KlasifikasiRekrut  Klasifikasi = "rekrut"  // belum pernah kerja di mitra lain
	KlasifikasiKontrak Klasifikasi = "kontrak" // masih terikat kontrak aktif di mitra lain
	KlasifikasiRehire  Klasifikasi = "rehire"  // pernah nonaktif, masuk lagi
	KlasifikasiMutasi  Klasifikasi = "mutasi"  // pindah mitra lewat persetujuan mutasi
)

// Mobilitas = satu baris per penempatan organisasi sebuah pegawai.
type Mobilitas struct {
	gorm.Model
	PegawaiID     uint        `json:"pegawai_id" gorm:"not null;index"`
	NIK           string      `json:"nik" gorm:"column:nik;size:50;not null;index"`
	AsalMitraID   *uint       `json:"asal_mitra_id"` // NULL untuk rekrut pertama
	TujuanMitraID uint        `json:"tujuan_mitra_id" gorm:"not null"`
	DepartemenID  *uint       `json:"departemen_id"`
	SeksiID       *uint       `json:"seksi_id"`
	JabatanID     *uint       `json:"jabatan_id"`
	TglEfektif    string      `json:"tgl_efektif"` // Format YYYY-MM-DD
	Klasifikasi   Klasifikasi `json:"klasifikasi" gorm:"size:20;not null"`
}

type MutasiStatus string

const (
	MutasiPending  MutasiStatus = "pending"
	MutasiApproved MutasiStatus = "approved"
	MutasiRejected MutasiStatus = "rejected"
)

// MutasiRequest = usulan pindah mitra. Dibuat oleh mitra tujuan,
// diputuskan oleh pejabat puncak mitra asal (atau aktor override global).
type MutasiRequest struct {
	gorm.Model
	NIK            string       `json:"nik" gorm:"column:nik;size:50;not null;index"`
	KaryawanID     *uint        `json:"karyawan_id"`
	AsalMitraID    uint         `json:"asal_mitra_id" gorm:"not null;index"`
	TujuanMitraID  uint         `json:"tujuan_mitra_id" gorm:"not null;index"`
	TglPengajuan   string       `json:"tgl_pengajuan"` // Format YYYY-MM-DD
	DiajukanOleh   string       `json:"diajukan_oleh"`
	Status         MutasiStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	TglKeputusan   *string      `json:"tgl_keputusan"`
	DiputuskanOleh string       `json:"diputuskan_oleh"`
	Catatan        string       `json:"catatan"`

	// Relasi
	AsalMitra   Mitra `json:"asal_mitra" gorm:"foreignKey:AsalMitraID"`
	TujuanMitra Mitra `json:"tujuan_mitra" gorm:"foreignKey:TujuanMitraID"`
}
