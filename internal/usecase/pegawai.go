package usecase

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// PegawaiUsecase = corong tunggal create/update ikatan kerja. Jalur
// interaktif dan jalur import sama-sama lewat sini supaya empat pengecekan
// intinya (konflik identitas, blacklist NIK, gerbang mobilitas, validasi
// hierarki) tidak pernah beda perilaku.
type PegawaiUsecase struct {
	db *gorm.DB
}

func NewPegawaiUsecase(db *gorm.DB) *PegawaiUsecase {
	return &PegawaiUsecase{db: db}
}

type PendidikanInput struct {
	Jenjang    string `json:"jenjang"`
	Institusi  string `json:"institusi"`
	Jurusan    string `json:"jurusan"`
	TahunLulus string `json:"tahun_lulus"`
}

type PegawaiInput struct {
	PegawaiID uint `json:"pegawai_id"` // 0 = create atau cocokkan via NIK+mitra

	NIK     string `json:"nik"`
	MitraID uint   `json:"mitra_id"`

	DepartemenID *uint `json:"departemen_id"`
	SeksiID      *uint `json:"seksi_id"`
	JabatanID    *uint `json:"jabatan_id"`

	// Identitas orang
	NIKKTP       string `json:"nik_ktp"`
	NoKK         string `json:"no_kk"`
	Nama         string `json:"nama"`
	TempatLahir  string `json:"tempat_lahir"`
	TanggalLahir string `json:"tanggal_lahir"`
	JenisKelamin string `json:"jenis_kelamin"`
	Agama        string `json:"agama"`
	Alamat       string `json:"alamat"`
	NoHP         string `json:"no_hp"`
	Email        string `json:"email"`
	Foto         string `json:"foto"`

	TglMasuk string `json:"tgl_masuk"`
	TglAktif string `json:"tgl_aktif"`

	Pendidikan []PendidikanInput `json:"pendidikan"`

	Sumber string `json:"-"` // "form" (default) | "import"
}

type SimpanResult struct {
	PegawaiID   uint              `json:"pegawai_id"`
	KaryawanID  uint              `json:"karyawan_id"`
	Dibuat      bool              `json:"dibuat"`
	Klasifikasi model.Klasifikasi `json:"klasifikasi,omitempty"`
}

// Simpan menjalankan seluruh corong dalam SATU transaksi. Semua pengecekan
// keputusan dibaca ulang di dalam transaksi itu, dengan baris Pegawai se-NIK
// dikunci FOR UPDATE, supaya dua request bersamaan untuk NIK yang sama tidak
// sama-sama lolos validasi atas snapshot basi.
func (u *PegawaiUsecase) Simpan(in PegawaiInput, aktor Aktor) (*SimpanResult, error) {
	in.NIK = strings.TrimSpace(in.NIK)
	in.Nama = strings.TrimSpace(in.Nama)
	in.NIKKTP = strings.TrimSpace(in.NIKKTP)
	in.NoKK = strings.TrimSpace(in.NoKK)
	if in.Sumber == "" {
		in.Sumber = "form"
	}

	if in.NIK == "" {
		return nil, apperror.Validation("nik", "NIK wajib diisi")
	}
	if in.Nama == "" {
		return nil, apperror.Validation("nama", "Nama wajib diisi")
	}
	if in.MitraID == 0 {
		return nil, apperror.Validation("mitra_id", "Mitra wajib diisi")
	}
	if !aktor.ScopeMitra(in.MitraID) {
		return nil, apperror.New(apperror.CodeAuthorization, "Akses ditolak")
	}

	in.TglMasuk = NormalisasiTanggal(in.TglMasuk)
	in.TglAktif = NormalisasiTanggal(in.TglAktif)

	var result SimpanResult
	err := u.db.Transaction(func(tx *gorm.DB) error {
		// Kunci semua ikatan se-NIK selama pengecekan + penulisan.
		var seNIK []model.Pegawai
		if err := kunciUpdate(tx).Where("nik = ?", in.NIK).Order("id").Find(&seNIK).Error; err != nil {
			return err
		}

		if err := u.validasiHierarki(tx, in); err != nil {
			return err
		}

		if !aktor.Privileged {
			kena, err := NIKTerblacklist(tx, in.NIK)
			if err != nil {
				return err
			}
			if kena {
				return apperror.Conflict("nik", "NIK "+in.NIK+" sedang berstatus blacklist dan tidak boleh diproses")
			}
		}

		existing := u.cariExisting(seNIK, in)
		if existing != nil && existing.MitraID != in.MitraID {
			// ID eksplisit menunjuk ikatan milik mitra lain; scope aktor
			// sudah lolos untuk in.MitraID, bukan untuk pemilik barisnya.
			return apperror.New(apperror.CodeAuthorization, "Akses ditolak")
		}

		// Default tanggal: hari ini hanya untuk ikatan baru. Ikatan yang
		// sudah ada mempertahankan tanggal tersimpan saat input kosong.
		if existing != nil {
			if in.TglMasuk == "" {
				in.TglMasuk = existing.TglMasuk
			}
			if in.TglAktif == "" {
				in.TglAktif = existing.TglAktif
			}
		} else {
			if in.TglMasuk == "" {
				in.TglMasuk = time.Now().Format("2006-01-02")
			}
			if in.TglAktif == "" {
				in.TglAktif = in.TglMasuk
			}
		}

		var excludeID uint
		if existing != nil {
			excludeID = existing.ID
		}

		konflik, err := DeteksiKonflik(tx, in.NIKKTP, in.NoKK, in.NIK, excludeID)
		if err != nil {
			return err
		}
		if err := errKonflikIdentitas(konflik); err != nil {
			return err
		}

		var klasifikasi model.Klasifikasi
		var riwayat Riwayat
		if existing == nil {
			riwayat, err = ResolveRiwayat(tx, in.NIK, in.MitraID)
			if err != nil {
				return err
			}
			klasifikasi, err = GerbangMobilitas(tx, riwayat, in.NIK, in.MitraID, in.TglMasuk, aktor)
			if err != nil {
				return err
			}
		}

		karyawan, err := u.simpanKaryawan(tx, in, existing, riwayat.PegawaiAsal, aktor)
		if err != nil {
			return err
		}
		result.KaryawanID = karyawan.ID

		if existing != nil {
			if err := u.updatePegawai(tx, existing, in, aktor); err != nil {
				return err
			}
			result.PegawaiID = existing.ID
			return nil
		}

		pegawai, err := u.buatPegawai(tx, in, karyawan.ID, riwayat, klasifikasi, aktor)
		if err != nil {
			return err
		}
		result.PegawaiID = pegawai.ID
		result.Dibuat = true
		result.Klasifikasi = klasifikasi
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// cariExisting mencocokkan target edit: ID eksplisit, atau ikatan berjalan
// untuk pasangan (NIK, mitra tujuan) yang sama.
func (u *PegawaiUsecase) cariExisting(seNIK []model.Pegawai, in PegawaiInput) *model.Pegawai {
	for i := range seNIK {
		if in.PegawaiID != 0 && seNIK[i].ID == in.PegawaiID {
			return &seNIK[i]
		}
		if in.PegawaiID == 0 && seNIK[i].MitraID == in.MitraID {
			return &seNIK[i]
		}
	}
	return nil
}

func (u *PegawaiUsecase) validasiHierarki(tx *gorm.DB, in PegawaiInput) error {
	var mitra model.Mitra
	if err := tx.First(&mitra, in.MitraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Validation("mitra_id", "Mitra tidak ditemukan")
		}
		return err
	}
	if in.DepartemenID != nil {
		var dept model.Departemen
		if err := tx.First(&dept, *in.DepartemenID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Validation("departemen_id", "Departemen tidak ditemukan")
			}
			return err
		}
		if dept.MitraID != in.MitraID {
			return apperror.Validation("departemen_id", "Departemen bukan milik mitra tujuan")
		}
		if in.SeksiID != nil {
			var seksi model.Seksi
			if err := tx.First(&seksi, *in.SeksiID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.Validation("seksi_id", "Seksi tidak ditemukan")
				}
				return err
			}
			if seksi.DepartemenID != *in.DepartemenID {
				return apperror.Validation("seksi_id", "Seksi bukan milik departemen terpilih")
			}
		}
	} else if in.SeksiID != nil {
		return apperror.Validation("seksi_id", "Seksi butuh departemen")
	}
	if in.JabatanID != nil {
		var jabatan model.Jabatan
		if err := tx.First(&jabatan, *in.JabatanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Validation("jabatan_id", "Jabatan tidak ditemukan")
			}
			return err
		}
	}
	return nil
}

// simpanKaryawan: cari orangnya lewat nomor identitas, lewat ikatan yang
// sedang diedit, atau lewat ikatan asal se-NIK (rehire/mutasi tanpa nomor
// identitas tetap menunjuk orang yang sama). Update in place sebagai
// kebenaran terbaru, atau buat baru.
func (u *PegawaiUsecase) simpanKaryawan(tx *gorm.DB, in PegawaiInput, existing, asal *model.Pegawai, aktor Aktor) (*model.Karyawan, error) {
	var karyawan *model.Karyawan
	var err error

	if existing != nil {
		var k model.Karyawan
		if err := tx.First(&k, existing.KaryawanID).Error; err != nil {
			return nil, err
		}
		karyawan = &k
	} else {
		karyawan, err = CariKaryawan(tx, in.NIKKTP, in.NoKK)
		if err != nil {
			return nil, err
		}
		if karyawan == nil && asal != nil {
			var k model.Karyawan
			if err := tx.First(&k, asal.KaryawanID).Error; err != nil {
				return nil, err
			}
			karyawan = &k
		}
	}

	if karyawan == nil {
		karyawan = &model.Karyawan{}
		isiKaryawan(karyawan, in)
		if err := tx.Create(karyawan).Error; err != nil {
			return nil, err
		}
		if len(in.Pendidikan) > 0 {
			if err := gantiPendidikan(tx, karyawan.ID, in.Pendidikan, aktor, in.Sumber); err != nil {
				return nil, err
			}
		}
		return karyawan, nil
	}

	// Nomor identitas yang kosong pada input tidak menghapus nilai tersimpan.
	if in.NIKKTP == "" {
		in.NIKKTP = strPtr(karyawan.NIKKTP)
	}
	if in.NoKK == "" {
		in.NoKK = strPtr(karyawan.NoKK)
	}

	diff := NewAuditDiff()
	diff.Teks("nik_ktp", strPtr(karyawan.NIKKTP), in.NIKKTP)
	diff.Teks("no_kk", strPtr(karyawan.NoKK), in.NoKK)
	diff.Teks("nama", karyawan.Nama, in.Nama)
	diff.Teks("tempat_lahir", karyawan.TempatLahir, in.TempatLahir)
	diff.Tanggal("tanggal_lahir", karyawan.TanggalLahir, in.TanggalLahir)
	diff.Teks("jenis_kelamin", karyawan.JenisKelamin, in.JenisKelamin)
	diff.Teks("agama", karyawan.Agama, in.Agama)
	diff.Teks("alamat", karyawan.Alamat, in.Alamat)
	diff.Teks("no_hp", karyawan.NoHP, in.NoHP)
	diff.Teks("email", karyawan.Email, in.Email)
	diff.Teks("foto", karyawan.Foto, in.Foto)

	isiKaryawan(karyawan, in)
	if err := tx.Save(karyawan).Error; err != nil {
		return nil, err
	}
	if err := tulisAudit(tx, "karyawan", nil, &karyawan.ID, aktor, in.Sumber, diff); err != nil {
		return nil, err
	}
	if len(in.Pendidikan) > 0 {
		if err := gantiPendidikan(tx, karyawan.ID, in.Pendidikan, aktor, in.Sumber); err != nil {
			return nil, err
		}
	}
	return karyawan, nil
}

func isiKaryawan(k *model.Karyawan, in PegawaiInput) {
	k.NIKKTP = nilIfEmpty(in.NIKKTP)
	k.NoKK = nilIfEmpty(in.NoKK)
	k.Nama = in.Nama
	k.TempatLahir = strings.TrimSpace(in.TempatLahir)
	k.TanggalLahir = NormalisasiTanggal(in.TanggalLahir)
	k.JenisKelamin = strings.TrimSpace(in.JenisKelamin)
	k.Agama = strings.TrimSpace(in.Agama)
	k.Alamat = strings.TrimSpace(in.Alamat)
	k.NoHP = strings.TrimSpace(in.NoHP)
	k.Email = strings.TrimSpace(in.Email)
	k.Foto = strings.TrimSpace(in.Foto)
}

// gantiPendidikan mengganti seluruh baris pendidikan dan mencatat ringkasan
// lama vs baru ke audit. Tidak dipanggil saat input tidak menyertakan
// pendidikan, jadi input kosong tidak menghapus data tersimpan.
func gantiPendidikan(tx *gorm.DB, karyawanID uint, rows []PendidikanInput, aktor Aktor, sumber string) error {
	var lama []model.Pendidikan
	if err := tx.Where("karyawan_id = ?", karyawanID).Order("id").Find(&lama).Error; err != nil {
		return err
	}

	baru := make([]model.Pendidikan, 0, len(rows))
	for _, r := range rows {
		baru = append(baru, model.Pendidikan{
			KaryawanID: karyawanID,
			Jenjang:    strings.TrimSpace(r.Jenjang),
			Institusi:  strings.TrimSpace(r.Institusi),
			Jurusan:    strings.TrimSpace(r.Jurusan),
			TahunLulus: strings.TrimSpace(r.TahunLulus),
		})
	}

	diff := NewAuditDiff()
	diff.Teks("pendidikan", ringkasPendidikan(lama), ringkasPendidikan(baru))
	if diff.Kosong() {
		return nil
	}

	if err := tx.Unscoped().Where("karyawan_id = ?", karyawanID).Delete(&model.Pendidikan{}).Error; err != nil {
		return err
	}
	if len(baru) > 0 {
		if err := tx.Create(&baru).Error; err != nil {
			return err
		}
	}
	return tulisAudit(tx, "karyawan", nil, &karyawanID, aktor, sumber, diff)
}

func ringkasPendidikan(rows []model.Pendidikan) string {
	bagian := make([]string, 0, len(rows))
	for _, r := range rows {
		teks := r.Jenjang + " " + r.Institusi + " " + r.Jurusan + " " + r.TahunLulus
		bagian = append(bagian, strings.Join(strings.Fields(teks), " "))
	}
	return strings.Join(bagian, "; ")
}

func (u *PegawaiUsecase) buatPegawai(tx *gorm.DB, in PegawaiInput, karyawanID uint, riwayat Riwayat, klasifikasi model.Klasifikasi, aktor Aktor) (*model.Pegawai, error) {
	pegawai := model.Pegawai{
		KaryawanID:   karyawanID,
		MitraID:      in.MitraID,
		NIK:          in.NIK,
		DepartemenID: in.DepartemenID,
		SeksiID:      in.SeksiID,
		JabatanID:    in.JabatanID,
		TglMasuk:     in.TglMasuk,
		TglAktif:     in.TglAktif,
		IsActive:     true,
	}
	if err := tx.Create(&pegawai).Error; err != nil {
		return nil, err
	}

	mob := model.Mobilitas{
		PegawaiID:     pegawai.ID,
		NIK:           pegawai.NIK,
		AsalMitraID:   riwayat.AsalMitraID,
		TujuanMitraID: pegawai.MitraID,
		DepartemenID:  pegawai.DepartemenID,
		SeksiID:       pegawai.SeksiID,
		JabatanID:     pegawai.JabatanID,
		TglEfektif:    pegawai.TglMasuk,
		Klasifikasi:   klasifikasi,
	}
	if err := tx.Create(&mob).Error; err != nil {
		return nil, err
	}

	diff := NewAuditDiff()
	diff.Teks("nik", "", pegawai.NIK)
	diff.UintPtr("mitra_id", nil, &pegawai.MitraID)
	diff.UintPtr("departemen_id", nil, pegawai.DepartemenID)
	diff.UintPtr("seksi_id", nil, pegawai.SeksiID)
	diff.UintPtr("jabatan_id", nil, pegawai.JabatanID)
	diff.Tanggal("tgl_masuk", "", pegawai.TglMasuk)
	diff.Bool("is_active", false, true)
	return &pegawai, tulisAudit(tx, "pegawai", &pegawai.ID, &karyawanID, aktor, in.Sumber, diff)
}

func (u *PegawaiUsecase) updatePegawai(tx *gorm.DB, pegawai *model.Pegawai, in PegawaiInput, aktor Aktor) error {
	diff := NewAuditDiff()
	diff.UintPtr("departemen_id", pegawai.DepartemenID, in.DepartemenID)
	diff.UintPtr("seksi_id", pegawai.SeksiID, in.SeksiID)
	diff.UintPtr("jabatan_id", pegawai.JabatanID, in.JabatanID)
	diff.Tanggal("tgl_masuk", pegawai.TglMasuk, in.TglMasuk)
	diff.Tanggal("tgl_aktif", pegawai.TglAktif, in.TglAktif)

	pegawai.DepartemenID = in.DepartemenID
	pegawai.SeksiID = in.SeksiID
	pegawai.JabatanID = in.JabatanID
	pegawai.TglMasuk = in.TglMasuk
	pegawai.TglAktif = in.TglAktif
	if err := tx.Save(pegawai).Error; err != nil {
		return err
	}
	return tulisAudit(tx, "pegawai", &pegawai.ID, &pegawai.KaryawanID, aktor, in.Sumber, diff)
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
