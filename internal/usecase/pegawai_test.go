package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

func TestSimpanValidasiDasar(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	uc := NewPegawaiUsecase(db)

	kasus := []struct {
		nama  string
		in    PegawaiInput
		field string
	}{
		{"tanpa NIK", PegawaiInput{Nama: "Budi", MitraID: mitra.ID}, "nik"},
		{"tanpa nama", PegawaiInput{NIK: "EMP001", MitraID: mitra.ID}, "nama"},
		{"tanpa mitra", PegawaiInput{NIK: "EMP001", Nama: "Budi"}, "mitra_id"},
		{"mitra tidak ada", PegawaiInput{NIK: "EMP001", Nama: "Budi", MitraID: 999}, "mitra_id"},
	}
	for _, k := range kasus {
		t.Run(k.nama, func(t *testing.T) {
			_, err := uc.Simpan(k.in, aktorPrivileged())
			require.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
			require.Equal(t, k.field, apperror.GetField(err))
		})
	}
}

func TestSimpanValidasiHierarki(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	deptB := buatDepartemen(t, db, mitraB.ID, "Gudang")
	uc := NewPegawaiUsecase(db)

	// Departemen milik mitra lain
	in := inputPegawai("EMP001", "Budi", mitraA.ID, "2025-01-10")
	in.DepartemenID = &deptB.ID
	_, err := uc.Simpan(in, aktorPrivileged())
	require.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	require.Equal(t, "departemen_id", apperror.GetField(err))

	// Seksi tanpa departemen
	seksiID := uint(1)
	in = inputPegawai("EMP001", "Budi", mitraA.ID, "2025-01-10")
	in.SeksiID = &seksiID
	_, err = uc.Simpan(in, aktorPrivileged())
	require.Equal(t, "seksi_id", apperror.GetField(err))
}

func TestSimpanCreateDanUpdate(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	dept := buatDepartemen(t, db, mitra.ID, "Produksi")
	uc := NewPegawaiUsecase(db)

	in := inputPegawai("EMP001", "Budi Santoso", mitra.ID, "2025-01-10")
	in.NIKKTP = "3201000000000001"
	in.NoHP = "081234567890"
	in.Pendidikan = []PendidikanInput{{Jenjang: "SMA", Institusi: "SMAN 1 Cikarang", TahunLulus: "2018"}}
	hasil, err := uc.Simpan(in, aktorMitra(mitra.ID))
	require.NoError(t, err)
	require.True(t, hasil.Dibuat)
	require.Equal(t, model.KlasifikasiRekrut, hasil.Klasifikasi)

	// Riwayat mobilitas rekrut tercatat tanpa mitra asal
	var mob model.Mobilitas
	require.NoError(t, db.Where("nik = ?", "EMP001").First(&mob).Error)
	require.Equal(t, model.KlasifikasiRekrut, mob.Klasifikasi)
	require.Nil(t, mob.AsalMitraID)
	require.Equal(t, mitra.ID, mob.TujuanMitraID)

	var pendidikan int64
	require.NoError(t, db.Model(&model.Pendidikan{}).Where("karyawan_id = ?", hasil.KaryawanID).Count(&pendidikan).Error)
	require.EqualValues(t, 1, pendidikan)

	// Kirim ulang NIK+mitra yang sama dengan nomor HP baru = update in place
	in.NoHP = "089999999999"
	in.DepartemenID = &dept.ID
	hasil2, err := uc.Simpan(in, aktorMitra(mitra.ID))
	require.NoError(t, err)
	require.False(t, hasil2.Dibuat)
	require.Equal(t, hasil.PegawaiID, hasil2.PegawaiID)
	require.Equal(t, hasil.KaryawanID, hasil2.KaryawanID)

	var karyawan model.Karyawan
	require.NoError(t, db.First(&karyawan, hasil.KaryawanID).Error)
	require.Equal(t, "089999999999", karyawan.NoHP)

	// Audit field-level: perubahan no_hp dan penempatan departemen tercatat
	var audits []model.AuditLog
	require.NoError(t, db.Where("karyawan_id = ? AND field = ?", hasil.KaryawanID, "no_hp").Find(&audits).Error)
	require.Len(t, audits, 1)
	require.Equal(t, "081234567890", audits[0].NilaiLama)
	require.Equal(t, "089999999999", audits[0].NilaiBaru)

	require.NoError(t, db.Where("pegawai_id = ? AND field = ?", hasil.PegawaiID, "departemen_id").Find(&audits).Error)
	require.Len(t, audits, 1) // hanya saat penempatan berubah
	require.Equal(t, "", audits[0].NilaiLama)
}

func TestSimpanMenolakNIKBlacklist(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	pegawai := buatPegawaiAktif(t, db, "EMP001", mitraA.ID)
	require.NoError(t, NewStatusUsecase(db).Blacklist(pegawai.ID, StatusInput{Alasan: "Fraud"}, aktorPrivileged()))

	uc := NewPegawaiUsecase(db)
	_, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-06-01"), aktorMitra(mitraB.ID))
	require.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
	require.Equal(t, "nik", apperror.GetField(err))

	// Privileged tetap bisa memproses
	_, err = uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-06-01"), aktorPrivileged())
	require.NoError(t, err)
}

// Alur lintas mitra lengkap: rekrut di A, nonaktif, ditolak masa tunggu,
// lalu diterima sebagai rehire setelah 90 hari.
func TestSimpanAlurRehire(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	uc := NewPegawaiUsecase(db)

	hasil, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraA.ID, "2024-06-01"), aktorMitra(mitraA.ID))
	require.NoError(t, err)
	require.Equal(t, model.KlasifikasiRekrut, hasil.Klasifikasi)

	require.NoError(t, NewStatusUsecase(db).Nonaktifkan(hasil.PegawaiID, StatusInput{
		Alasan: "Habis kontrak", TglMulai: "2025-01-01",
	}, aktorMitra(mitraA.ID)))

	// 2025-02-01: baru 31 hari, mitra B ditolak
	_, err = uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-02-01"), aktorMitra(mitraB.ID))
	require.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
	require.Equal(t, "tgl_masuk", apperror.GetField(err))

	// 2025-04-05: lewat 90 hari, diterima sebagai rehire
	hasil2, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-04-05"), aktorMitra(mitraB.ID))
	require.NoError(t, err)
	require.True(t, hasil2.Dibuat)
	require.Equal(t, model.KlasifikasiRehire, hasil2.Klasifikasi)

	// Orangnya tetap satu: dua ikatan menunjuk Karyawan yang sama
	require.Equal(t, hasil.KaryawanID, hasil2.KaryawanID)

	var mob model.Mobilitas
	require.NoError(t, db.Where("pegawai_id = ?", hasil2.PegawaiID).First(&mob).Error)
	require.Equal(t, model.KlasifikasiRehire, mob.Klasifikasi)
	require.NotNil(t, mob.AsalMitraID)
	require.Equal(t, mitraA.ID, *mob.AsalMitraID)
}

func TestSimpanGerbangKontrak(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	uc := NewPegawaiUsecase(db)

	_, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraA.ID, "2024-06-01"), aktorMitra(mitraA.ID))
	require.NoError(t, err)

	// Masih aktif di A: B ditolak tanpa persetujuan mutasi
	_, err = uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-02-01"), aktorMitra(mitraB.ID))
	require.Equal(t, apperror.CodeConflict, apperror.GetCode(err))

	// Setelah pengajuan disetujui mitra asal, B masuk sebagai mutasi
	mutasi := NewMutasiUsecase(db, nil, testLogger())
	req, err := mutasi.Ajukan(AjukanMutasiInput{NIK: "EMP001", TujuanMitraID: mitraB.ID}, aktorMitra(mitraB.ID))
	require.NoError(t, err)
	require.NoError(t, mutasi.Putuskan(req.ID, KeputusanMutasiInput{Setuju: true}, aktorMitra(mitraA.ID)))

	hasil, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-02-01"), aktorMitra(mitraB.ID))
	require.NoError(t, err)
	require.Equal(t, model.KlasifikasiMutasi, hasil.Klasifikasi)
}

func TestSimpanGerbangKontrakPrivilegedLolos(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	uc := NewPegawaiUsecase(db)

	_, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraA.ID, "2024-06-01"), aktorPrivileged())
	require.NoError(t, err)

	hasil, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-02-01"), aktorPrivileged())
	require.NoError(t, err)
	require.Equal(t, model.KlasifikasiKontrak, hasil.Klasifikasi)
}

// Aktor mitra B tidak boleh menyunting ikatan milik mitra A lewat ID
// eksplisit, meskipun mitra_id pada input miliknya sendiri.
func TestSimpanTolakEditIkatanMitraLain(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	deptB := buatDepartemen(t, db, mitraB.ID, "Gudang")
	uc := NewPegawaiUsecase(db)

	hasil, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraA.ID, "2024-01-15"), aktorPrivileged())
	require.NoError(t, err)

	in := inputPegawai("EMP001", "Budi", mitraB.ID, "2030-01-01")
	in.PegawaiID = hasil.PegawaiID
	in.DepartemenID = &deptB.ID
	_, err = uc.Simpan(in, aktorMitra(mitraB.ID))
	require.Equal(t, apperror.CodeAuthorization, apperror.GetCode(err))

	// Ikatan milik A tidak tersentuh
	var pegawai model.Pegawai
	require.NoError(t, db.First(&pegawai, hasil.PegawaiID).Error)
	require.Equal(t, mitraA.ID, pegawai.MitraID)
	require.Nil(t, pegawai.DepartemenID)
	require.Equal(t, "2024-01-15", pegawai.TglMasuk)
}

// Update yang tidak menyertakan tanggal mempertahankan tanggal tersimpan,
// bukan menimpanya dengan hari ini.
func TestSimpanUpdateTanpaTanggalTidakMenimpa(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	uc := NewPegawaiUsecase(db)

	in := inputPegawai("EMP001", "Budi", mitra.ID, "2024-01-15")
	in.NoHP = "081234567890"
	hasil, err := uc.Simpan(in, aktorMitra(mitra.ID))
	require.NoError(t, err)

	ulang := inputPegawai("EMP001", "Budi", mitra.ID, "")
	ulang.NoHP = "089999999999"
	_, err = uc.Simpan(ulang, aktorMitra(mitra.ID))
	require.NoError(t, err)

	var pegawai model.Pegawai
	require.NoError(t, db.First(&pegawai, hasil.PegawaiID).Error)
	require.Equal(t, "2024-01-15", pegawai.TglMasuk)
	require.Equal(t, "2024-01-15", pegawai.TglAktif)

	var audits []model.AuditLog
	require.NoError(t, db.Where("pegawai_id = ? AND field = ?", hasil.PegawaiID, "tgl_masuk").Find(&audits).Error)
	require.Len(t, audits, 1) // hanya entri create
}

func TestSimpanAuditPendidikan(t *testing.T) {
	db := newTestDB(t)
	mitra := buatMitra(t, db, "PT Alpha")
	uc := NewPegawaiUsecase(db)

	in := inputPegawai("EMP001", "Budi", mitra.ID, "2024-01-15")
	in.Pendidikan = []PendidikanInput{{Jenjang: "SMA", Institusi: "SMAN 1 Cikarang", TahunLulus: "2018"}}
	hasil, err := uc.Simpan(in, aktorMitra(mitra.ID))
	require.NoError(t, err)

	var audits []model.AuditLog
	require.NoError(t, db.Where("karyawan_id = ? AND field = ?", hasil.KaryawanID, "pendidikan").Find(&audits).Error)
	require.Len(t, audits, 1)
	require.Equal(t, "", audits[0].NilaiLama)
	require.Contains(t, audits[0].NilaiBaru, "SMAN 1 Cikarang")

	// Kirim ulang pendidikan yang sama: tidak ada tulis ulang maupun audit baru
	_, err = uc.Simpan(in, aktorMitra(mitra.ID))
	require.NoError(t, err)
	require.NoError(t, db.Where("karyawan_id = ? AND field = ?", hasil.KaryawanID, "pendidikan").Find(&audits).Error)
	require.Len(t, audits, 1)

	// Pendidikan berubah: baris diganti dan perubahannya tercatat
	in.Pendidikan = append(in.Pendidikan, PendidikanInput{Jenjang: "S1", Institusi: "Universitas Terbuka", Jurusan: "Manajemen", TahunLulus: "2023"})
	_, err = uc.Simpan(in, aktorMitra(mitra.ID))
	require.NoError(t, err)

	require.NoError(t, db.Where("karyawan_id = ? AND field = ?", hasil.KaryawanID, "pendidikan").Order("id").Find(&audits).Error)
	require.Len(t, audits, 2)
	require.Contains(t, audits[1].NilaiLama, "SMAN 1 Cikarang")
	require.Contains(t, audits[1].NilaiBaru, "Universitas Terbuka")

	var jumlah int64
	require.NoError(t, db.Model(&model.Pendidikan{}).Where("karyawan_id = ?", hasil.KaryawanID).Count(&jumlah).Error)
	require.EqualValues(t, 2, jumlah)
}

func TestSimpanScopeMitra(t *testing.T) {
	db := newTestDB(t)
	mitraA := buatMitra(t, db, "PT Alpha")
	mitraB := buatMitra(t, db, "PT Beta")
	uc := NewPegawaiUsecase(db)

	_, err := uc.Simpan(inputPegawai("EMP001", "Budi", mitraB.ID, "2025-01-10"), aktorMitra(mitraA.ID))
	require.Equal(t, apperror.CodeAuthorization, apperror.GetCode(err))
}
