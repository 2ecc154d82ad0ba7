package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

func TestCariKaryawanMengutamakanNIKKTP(t *testing.T) {
	db := newTestDB(t)

	ktpA, kkA := "3201000000000001", "3201111111111111"
	ktpB, kkB := "3201000000000002", "3201222222222222"
	a := model.Karyawan{NIKKTP: &ktpA, NoKK: &kkA, Nama: "Orang A"}
	b := model.Karyawan{NIKKTP: &ktpB, NoKK: &kkB, Nama: "Orang B"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	// NIK KTP milik A, No KK milik B: A yang menang
	hasil, err := CariKaryawan(db, ktpA, kkB)
	require.NoError(t, err)
	require.NotNil(t, hasil)
	require.Equal(t, a.ID, hasil.ID)

	// Hanya No KK: match via KK
	hasil, err = CariKaryawan(db, "", kkB)
	require.NoError(t, err)
	require.NotNil(t, hasil)
	require.Equal(t, b.ID, hasil.ID)

	// Tidak ada yang cocok
	hasil, err = CariKaryawan(db, "9999", "9999")
	require.NoError(t, err)
	require.Nil(t, hasil)
}

func TestDeteksiKonflik(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")

	ktp := "3201000000000009"
	karyawan := model.Karyawan{NIKKTP: &ktp, Nama: "Citra"}
	require.NoError(t, db.Create(&karyawan).Error)
	pegawai := model.Pegawai{KaryawanID: karyawan.ID, MitraID: mitraA.ID, NIK: "EMP100", IsActive: true}
	require.NoError(t, db.Create(&pegawai).Error)

	// NIK beda, nomor KTP sama: konflik, lengkap dengan konteks NIK + mitra
	konflik, err := DeteksiKonflik(db, ktp, "", "EMP200", 0)
	require.NoError(t, err)
	require.Len(t, konflik, 1)
	require.Equal(t, "nik_ktp", konflik[0].Field)
	require.Equal(t, "EMP100", konflik[0].NIK)
	require.Equal(t, "PT Alpha", konflik[0].NamaMitra)

	// Self-match via NIK yang sama = re-employment sah, bukan konflik
	konflik, err = DeteksiKonflik(db, ktp, "", "EMP100", 0)
	require.NoError(t, err)
	require.Empty(t, konflik)

	// Pegawai yang sedang diedit sendiri dikecualikan
	konflik, err = DeteksiKonflik(db, ktp, "", "EMP200", pegawai.ID)
	require.NoError(t, err)
	require.Empty(t, konflik)

	// Tanpa nomor identitas tidak ada yang dicek
	konflik, err = DeteksiKonflik(db, "", "", "EMP300", 0)
	require.NoError(t, err)
	require.Empty(t, konflik)
}

func TestSimpanMenolakKonflikIdentitas(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	uc := NewPegawaiUsecase(db)

	in := inputPegawai("EMP001", "Budi", mitraA.ID, "2025-01-10")
	in.NIKKTP = "3201000000001234"
	_, err := uc.Simpan(in, aktorPrivileged())
	require.NoError(t, err)

	// Orang "lain" (NIK beda) mengklaim nomor KTP yang sama
	in2 := inputPegawai("EMP777", "Budi Palsu", mitraB.ID, "2025-01-11")
	in2.NIKKTP = "3201000000001234"
	_, err = uc.Simpan(in2, aktorPrivileged())
	require.Error(t, err)
	require.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
	require.Equal(t, "nik_ktp", apperror.GetField(err))

	// Invariant: tetap satu Karyawan untuk nomor itu
	var jumlah int64
	require.NoError(t, db.Model(&model.Karyawan{}).Where("nik_ktp = ?", "3201000000001234").Count(&jumlah).Error)
	require.EqualValues(t, 1, jumlah)
}
