package model

import (
	"gorm.io/gorm"
)

// Mitra = perusahaan legal yang berbagi satu pool tenaga kerja.
type Mitra struct {
	gorm.Model
	NamaMitra string `json:"nama_mitra" gorm:"unique;not null"`
	ParentID  *uint  `json:"parent_id"` // Self-reference untuk grup perusahaan
	Alamat    string `json:"alamat"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	// Relasi
	Parent     *Mitra       `json:"parent" gorm:"foreignKey:ParentID"`
	Departemen []Departemen `json:"departemen"`
	Pegawai    []Pegawai    `json:"pegawai"`
}

type Departemen struct {
	gorm.Model
	MitraID        uint   `json:"mitra_id" gorm:"not null;index"`
	NamaDepartemen string `json:"nama_departemen" gorm:"not null"`

	Seksi []Seksi `json:"seksi"`
}

type Seksi struct {
	gorm.Model
	DepartemenID uint   `json:"departemen_id" gorm:"not null;index"`
	NamaSeksi    string `json:"nama_seksi" gorm:"not null"`
}

type Jabatan struct {
	gorm.Model
	NamaJabatan string `json:"nama_jabatan" gorm:"unique;not null"`
	Level       int    `json:"level"`
}
