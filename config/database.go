package config

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

var DB *gorm.DB

func ConnectDB() {
	db, err := gorm.Open(mysql.Open(DSN()), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("Gagal koneksi ke database")
	}

	// Auto Migration: membuat tabel berdasarkan struct di folder model
	if err := Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Gagal migrasi database")
	}

	DB = db
}

// Migrate dipisah agar bisa dipakai ulang oleh seeder dan test harness.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Mitra{},
		&model.Departemen{},
		&model.Seksi{},
		&model.Jabatan{},
		&model.Role{},
		&model.Permission{},
		&model.User{},
		&model.Karyawan{},
		&model.Pendidikan{},
		&model.Pegawai{},
		&model.StatusLog{},
		&model.Mobilitas{},
		&model.MutasiRequest{},
		&model.AuditLog{},
	)
}
