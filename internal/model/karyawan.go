package model

import "gorm.io/gorm"

// Karyawan = satu individu (orang), lintas mitra.
// Deduplikasi orang memakai NIK KTP dan/atau No KK, BUKAN NIK pegawai.
type Karyawan struct {
	gorm.Model
	NIKKTP       *string `json:"nik_ktp" gorm:"column:nik_ktp;size:32;uniqueIndex"`
	NoKK         *string `json:"no_kk" gorm:"column:no_kk;size:32;uniqueIndex"`
	Nama         string  `json:"nama" gorm:"not null"`
	TempatLahir  string  `json:"tempat_lahir"`
	TanggalLahir string  `json:"tanggal_lahir"` // Format YYYY-MM-DD
	JenisKelamin string  `json:"jenis_kelamin"`
	Agama        string  `json:"agama"`
	Alamat       string  `json:"alamat"`
	NoHP         string  `json:"no_hp"`
	Email        string  `json:"email"`
	Foto         string  `json:"foto"` // URL dari file-storage collaborator, tidak diproses di sini

	// Relasi
	Pendidikan []Pendidikan `json:"pendidikan"`
	Pegawai    []Pegawai    `json:"pegawai"`
}

type Pendidikan struct {
	gorm.Model
	KaryawanID uint   `json:"karyawan_id"`
	Jenjang    string `json:"jenjang"` // SD/SMP/SMA/D3/S1/...
	Institusi  string `json:"institusi"`
	Jurusan    string `json:"jurusan"`
	TahunLulus string `json:"tahun_lulus"`
}
