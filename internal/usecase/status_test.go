package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// buatPegawaiAktif menanam satu pegawai aktif via corong Simpan.
func buatPegawaiAktif(t *testing.T, db *gorm.DB, nik string, mitraID uint) model.Pegawai {
	t.Helper()
	uc := NewPegawaiUsecase(db)
	hasil, err := uc.Simpan(inputPegawai(nik, "Pegawai "+nik, mitraID, "2024-01-15"), aktorPrivileged())
	require.NoError(t, err)
	var pegawai model.Pegawai
	require.NoError(t, db.First(&pegawai, hasil.PegawaiID).Error)
	return pegawai
}

func TestNonaktifkan(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	pegawai := buatPegawaiAktif(t, db, "EMP001", mitra.ID)
	uc := NewStatusUsecase(db)

	// Tanpa alasan ditolak
	err := uc.Nonaktifkan(pegawai.ID, StatusInput{}, aktorMitra(mitra.ID))
	require.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	err = uc.Nonaktifkan(pegawai.ID, StatusInput{
		Alasan:   "Habis kontrak",
		Kategori: "kontrak",
		TglMulai: "2025-01-01",
	}, aktorMitra(mitra.ID))
	require.NoError(t, err)

	require.NoError(t, db.First(&pegawai, pegawai.ID).Error)
	require.False(t, pegawai.IsActive)
	require.NotNil(t, pegawai.TglNonaktif)
	require.Equal(t, "2025-01-01", *pegawai.TglNonaktif)
	require.Equal(t, "Habis kontrak", pegawai.AlasanNonaktif)

	var log model.StatusLog
	require.NoError(t, db.Where("pegawai_id = ?", pegawai.ID).First(&log).Error)
	require.Equal(t, model.StatusNonaktif, log.Tipe)
	require.Equal(t, "EMP001", log.NIK)
	require.Equal(t, "2025-01-01", log.TglMulai)

	var audit int64
	require.NoError(t, db.Model(&model.AuditLog{}).
		Where("pegawai_id = ? AND sumber = ?", pegawai.ID, "status").
		Count(&audit).Error)
	require.Greater(t, audit, int64(0))
}

func TestNonaktifkanDiLuarScopeDitolak(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	pegawai := buatPegawaiAktif(t, db, "EMP001", mitraA.ID)

	err := NewStatusUsecase(db).Nonaktifkan(pegawai.ID, StatusInput{Alasan: "iseng"}, aktorMitra(mitraB.ID))
	require.Equal(t, apperror.CodeAuthorization, apperror.GetCode(err))
}

func TestBlacklist(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	pegawai := buatPegawaiAktif(t, db, "EMP001", mitra.ID)
	uc := NewStatusUsecase(db)

	err := uc.Blacklist(pegawai.ID, StatusInput{Alasan: "Pemalsuan dokumen", Kategori: "berat"}, aktorMitra(mitra.ID))
	require.NoError(t, err)

	require.NoError(t, db.First(&pegawai, pegawai.ID).Error)
	require.False(t, pegawai.IsActive)

	kena, err := NIKTerblacklist(db, "EMP001")
	require.NoError(t, err)
	require.True(t, kena)

	// Aktor biasa tidak boleh menumpuk blacklist kedua
	err = uc.Blacklist(pegawai.ID, StatusInput{Alasan: "Lagi"}, aktorMitra(mitra.ID))
	require.Equal(t, apperror.CodeConflict, apperror.GetCode(err))

	// Privileged boleh
	err = uc.Blacklist(pegawai.ID, StatusInput{Alasan: "Catatan tambahan"}, aktorPrivileged())
	require.NoError(t, err)
}

func TestCabutBlacklist(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	pegawai := buatPegawaiAktif(t, db, "EMP001", mitra.ID)
	uc := NewStatusUsecase(db)

	// Belum ada blacklist berjalan
	err := uc.CabutBlacklist(pegawai.ID, aktorPrivileged())
	require.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	require.NoError(t, uc.Blacklist(pegawai.ID, StatusInput{Alasan: "Fraud"}, aktorPrivileged()))

	// Bukan privileged: ditolak
	err = uc.CabutBlacklist(pegawai.ID, aktorMitra(mitra.ID))
	require.Equal(t, apperror.CodeAuthorization, apperror.GetCode(err))

	require.NoError(t, uc.CabutBlacklist(pegawai.ID, aktorPrivileged()))

	kena, err := NIKTerblacklist(db, "EMP001")
	require.NoError(t, err)
	require.False(t, kena)

	// Pencabutan TIDAK mengaktifkan kembali pegawainya
	require.NoError(t, db.First(&pegawai, pegawai.ID).Error)
	require.False(t, pegawai.IsActive)
}

func TestCatatPelanggaranTidakMenonaktifkan(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	pegawai := buatPegawaiAktif(t, db, "EMP001", mitra.ID)

	err := NewStatusUsecase(db).CatatPelanggaran(pegawai.ID, StatusInput{
		Alasan:   "Terlambat 5 kali dalam sebulan",
		Kategori: "ringan",
	}, aktorMitra(mitra.ID))
	require.NoError(t, err)

	require.NoError(t, db.First(&pegawai, pegawai.ID).Error)
	require.True(t, pegawai.IsActive)

	var log model.StatusLog
	require.NoError(t, db.Where("pegawai_id = ? AND tipe = ?", pegawai.ID, model.StatusPelanggaran).First(&log).Error)
	require.Equal(t, "ringan", log.Kategori)
}
