package usecase

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/config"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// newTestDB membuka SQLite in-memory terpisah per test dan menjalankan
// migrasi yang sama dengan aplikasi.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func buatMitra(t *testing.T, db *gorm.DB, nama string) model.Mitra {
	t.Helper()
	mitra := model.Mitra{NamaMitra: nama, IsActive: true}
	require.NoError(t, db.Create(&mitra).Error)
	return mitra
}

func buatDepartemen(t *testing.T, db *gorm.DB, mitraID uint, nama string) model.Departemen {
	t.Helper()
	dept := model.Departemen{MitraID: mitraID, NamaDepartemen: nama}
	require.NoError(t, db.Create(&dept).Error)
	return dept
}

func buatRole(t *testing.T, db *gorm.DB, nama string, level int) model.Role {
	t.Helper()
	role := model.Role{NamaRole: nama, AccessLevel: level}
	require.NoError(t, db.Create(&role).Error)
	return role
}

func aktorPrivileged() Aktor {
	return Aktor{UserID: 1, Username: "superadmin", Role: "Super Admin", AccessLevel: 99, Privileged: true}
}

func aktorMitra(mitraID uint) Aktor {
	return Aktor{UserID: 2, Username: "adminhr", Role: "Admin HR", AccessLevel: 5, MitraID: &mitraID}
}

// aktorMitraDept = aktor ber-scope departemen (bukan pejabat puncak).
func aktorMitraDept(mitraID, departemenID uint) Aktor {
	a := aktorMitra(mitraID)
	a.DepartemenID = &departemenID
	return a
}

// inputPegawai merakit input minimal yang valid untuk corong Simpan.
func inputPegawai(nik, nama string, mitraID uint, tglMasuk string) PegawaiInput {
	return PegawaiInput{
		NIK:      nik,
		Nama:     nama,
		MitraID:  mitraID,
		TglMasuk: tglMasuk,
	}
}
