package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// Batas jumlah pesan error yang dikembalikan ke pemanggil per batch.
const MaksErrorImport = 20

type AksiImport string

const (
	AksiInsert   AksiImport = "Insert"
	AksiUpdate   AksiImport = "Update"
	AksiTransfer AksiImport = "Transfer"
	AksiError    AksiImport = "Error"
)

// BarisImport = satu baris kandidat dari spreadsheet. Lookup mitra/
// departemen/seksi/jabatan berdasarkan nama, exact match case-sensitive.
type BarisImport struct {
	Nomor int `json:"nomor"` // nomor baris di file, untuk pesan error

	NIK  string `json:"nik"`
	Nama string `json:"nama"`

	NamaMitra      string `json:"nama_mitra"`
	NamaDepartemen string `json:"nama_departemen"`
	NamaSeksi      string `json:"nama_seksi"`
	NamaJabatan    string `json:"nama_jabatan"`

	NIKKTP       string `json:"nik_ktp"`
	NoKK         string `json:"no_kk"`
	TempatLahir  string `json:"tempat_lahir"`
	TanggalLahir string `json:"tanggal_lahir"`
	JenisKelamin string `json:"jenis_kelamin"`
	Agama        string `json:"agama"`
	Alamat       string `json:"alamat"`
	NoHP         string `json:"no_hp"`
	Email        string `json:"email"`

	TglMasuk string `json:"tgl_masuk"`
}

type HasilBaris struct {
	Nomor int        `json:"nomor"`
	NIK   string     `json:"nik"`
	Aksi  AksiImport `json:"aksi"`
	Pesan string     `json:"pesan,omitempty"`
}

type RekapImport struct {
	BatchID  string       `json:"batch_id"`
	Total    int          `json:"total"`
	Masuk    int          `json:"masuk"`
	Ubah     int          `json:"ubah"`
	Dilewati int          `json:"dilewati"`
	Hasil    []HasilBaris `json:"hasil"`
	Errors   []string     `json:"errors"`
}

// snapshotImport = tabel lookup bersama untuk satu batch: dibangun SEKALI,
// bukan per baris, supaya kerja database terikat O(ukuran batch).
type snapshotImport struct {
	mitra      map[string]uint          // nama -> id (case-sensitive)
	departemen map[uint]map[string]uint // mitraID -> nama -> id
	seksi      map[uint]map[string]uint // departemenID -> nama -> id
	jabatan    map[string]uint

	pegawaiSeNIK map[string][]model.Pegawai // semua ikatan untuk NIK di batch

	identitas        []kandidatKonflik // pemegang nomor identitas yang disebut batch
	blacklist        map[string]bool   // nik -> ada blacklist berjalan
	nonaktifTerakhir map[string]string // nik -> tgl nonaktif paling baru
	mutasiApproved   map[string]bool   // "nik|asal|tujuan" -> ada approved
}

type kandidatKonflik struct {
	PegawaiID uint    `gorm:"column:pegawai_id"`
	NIK       string  `gorm:"column:nik"`
	NIKKTP    *string `gorm:"column:nik_ktp"`
	NoKK      *string `gorm:"column:no_kk"`
	NamaMitra string  `gorm:"column:nama_mitra"`
}

type ImportUsecase struct {
	db      *gorm.DB
	pegawai *PegawaiUsecase
	log     *logrus.Logger
}

func NewImportUsecase(db *gorm.DB, pegawai *PegawaiUsecase, log *logrus.Logger) *ImportUsecase {
	return &ImportUsecase{db: db, pegawai: pegawai, log: log}
}

// Klasifikasikan menilai tiap baris secara independen terhadap satu snapshot
// bersama, dengan aturan yang SAMA dengan jalur interaktif. Murni terhadap
// snapshot: dijalankan dua kali atas snapshot yang sama hasilnya identik.
func (u *ImportUsecase) Klasifikasikan(rows []BarisImport, aktor Aktor) ([]HasilBaris, error) {
	snap, err := u.bangunSnapshot(rows)
	if err != nil {
		return nil, err
	}
	return u.klasifikasiDenganSnapshot(rows, snap, aktor), nil
}

func (u *ImportUsecase) klasifikasiDenganSnapshot(rows []BarisImport, snap *snapshotImport, aktor Aktor) []HasilBaris {
	hasil := make([]HasilBaris, 0, len(rows))
	for _, baris := range rows {
		hasil = append(hasil, u.klasifikasiBaris(baris, snap, aktor))
	}
	return hasil
}

func (u *ImportUsecase) klasifikasiBaris(baris BarisImport, snap *snapshotImport, aktor Aktor) HasilBaris {
	nik := strings.TrimSpace(baris.NIK)
	h := HasilBaris{Nomor: baris.Nomor, NIK: nik}

	// 1. Field wajib
	if nik == "" {
		return errorBaris(h, "NIK wajib diisi")
	}
	if strings.TrimSpace(baris.Nama) == "" {
		return errorBaris(h, "Nama wajib diisi")
	}
	mitraID, ok := snap.mitra[strings.TrimSpace(baris.NamaMitra)]
	if !ok {
		return errorBaris(h, fmt.Sprintf("Mitra %q tidak dikenal", strings.TrimSpace(baris.NamaMitra)))
	}

	// Blacklist berlaku untuk semua jalur tulis aktor biasa.
	if !aktor.Privileged && snap.blacklist[nik] {
		return errorBaris(h, "NIK "+nik+" sedang berstatus blacklist")
	}

	// 2. Konflik identitas, aturan pengecualian sama dengan jalur interaktif.
	var excludeID uint
	for _, p := range snap.pegawaiSeNIK[nik] {
		if p.MitraID == mitraID {
			excludeID = p.ID
			break
		}
	}
	if k := konflikDariSnapshot(snap.identitas, baris.NIKKTP, baris.NoKK, nik, excludeID); k != nil {
		return errorBaris(h, k.Pesan())
	}

	// 3-5. Update / Transfer (dengan gerbang mobilitas) / Insert.
	adaDiMitraTujuan := excludeID != 0
	adaDiMitraLain := false
	var asalMitraID uint
	for _, p := range snap.pegawaiSeNIK[nik] {
		if p.MitraID != mitraID {
			adaDiMitraLain = true
			asalMitraID = p.MitraID
		}
	}

	switch {
	case adaDiMitraTujuan:
		h.Aksi = AksiUpdate
	case adaDiMitraLain:
		if !aktor.Privileged {
			tglNonaktif := snap.nonaktifTerakhir[nik]
			if tglNonaktif == "" {
				key := kunciMutasi(nik, asalMitraID, mitraID)
				if _, err := gerbangKontrak(nik, snap.mutasiApproved[key]); err != nil {
					return errorBaris(h, err.Error())
				}
			} else {
				if _, err := gerbangRehire(nik, tglNonaktif, baris.TglMasuk); err != nil {
					return errorBaris(h, err.Error())
				}
			}
		}
		h.Aksi = AksiTransfer
	default:
		h.Aksi = AksiInsert
	}
	return h
}

func errorBaris(h HasilBaris, pesan string) HasilBaris {
	h.Aksi = AksiError
	h.Pesan = pesan
	return h
}

// Jalankan = klasifikasi + terapkan. Baris valid diterapkan lewat corong
// interaktif (audit lengkap), masing-masing dalam transaksinya sendiri:
// gagalnya satu baris tidak membatalkan baris lain yang sudah commit.
func (u *ImportUsecase) Jalankan(rows []BarisImport, aktor Aktor) (*RekapImport, error) {
	snap, err := u.bangunSnapshot(rows)
	if err != nil {
		return nil, err
	}

	rekap := &RekapImport{
		BatchID: uuid.NewString(),
		Total:   len(rows),
	}
	log := u.log.WithFields(logrus.Fields{"batch_id": rekap.BatchID, "baris": len(rows), "oleh": aktor.Username})
	log.Info("Import pegawai dimulai")

	hasil := u.klasifikasiDenganSnapshot(rows, snap, aktor)
	for i, h := range hasil {
		if h.Aksi == AksiError {
			rekap.Dilewati++
			u.catatError(rekap, h)
			rekap.Hasil = append(rekap.Hasil, h)
			continue
		}

		in := u.barisKeInput(rows[i], snap)
		res, err := u.pegawai.Simpan(in, aktor)
		if err != nil {
			// Snapshot bisa basi terhadap penulis lain; corongnya sendiri
			// yang jadi penentu akhir. Baris gagal dicatat, batch lanjut.
			h = errorBaris(h, err.Error())
			rekap.Dilewati++
			u.catatError(rekap, h)
			rekap.Hasil = append(rekap.Hasil, h)
			continue
		}
		if res.Dibuat {
			rekap.Masuk++
		} else {
			rekap.Ubah++
		}
		rekap.Hasil = append(rekap.Hasil, h)
	}

	log.WithFields(logrus.Fields{
		"masuk":    rekap.Masuk,
		"ubah":     rekap.Ubah,
		"dilewati": rekap.Dilewati,
	}).Info("Import pegawai selesai")
	return rekap, nil
}

func (u *ImportUsecase) catatError(rekap *RekapImport, h HasilBaris) {
	if len(rekap.Errors) >= MaksErrorImport {
		return
	}
	rekap.Errors = append(rekap.Errors, fmt.Sprintf("Baris %d (NIK %s): %s", h.Nomor, h.NIK, h.Pesan))
}

func (u *ImportUsecase) barisKeInput(baris BarisImport, snap *snapshotImport) PegawaiInput {
	mitraID := snap.mitra[strings.TrimSpace(baris.NamaMitra)]
	in := PegawaiInput{
		NIK:          baris.NIK,
		Nama:         baris.Nama,
		MitraID:      mitraID,
		NIKKTP:       baris.NIKKTP,
		NoKK:         baris.NoKK,
		TempatLahir:  baris.TempatLahir,
		TanggalLahir: baris.TanggalLahir,
		JenisKelamin: baris.JenisKelamin,
		Agama:        baris.Agama,
		Alamat:       baris.Alamat,
		NoHP:         baris.NoHP,
		Email:        baris.Email,
		TglMasuk:     baris.TglMasuk,
		Sumber:       "import",
	}
	if nama := strings.TrimSpace(baris.NamaDepartemen); nama != "" {
		if id, ok := snap.departemen[mitraID][nama]; ok {
			in.DepartemenID = &id
			if namaSeksi := strings.TrimSpace(baris.NamaSeksi); namaSeksi != "" {
				if sid, ok := snap.seksi[id][namaSeksi]; ok {
					in.SeksiID = &sid
				}
			}
		}
	}
	if nama := strings.TrimSpace(baris.NamaJabatan); nama != "" {
		if id, ok := snap.jabatan[nama]; ok {
			in.JabatanID = &id
		}
	}
	return in
}

// bangunSnapshot memuat seluruh tabel lookup dan kondisi existing untuk
// himpunan NIK + nomor identitas yang disebut batch, sekali per batch.
func (u *ImportUsecase) bangunSnapshot(rows []BarisImport) (*snapshotImport, error) {
	snap := &snapshotImport{
		mitra:            map[string]uint{},
		departemen:       map[uint]map[string]uint{},
		seksi:            map[uint]map[string]uint{},
		jabatan:          map[string]uint{},
		pegawaiSeNIK:     map[string][]model.Pegawai{},
		blacklist:        map[string]bool{},
		nonaktifTerakhir: map[string]string{},
		mutasiApproved:   map[string]bool{},
	}

	var mitra []model.Mitra
	if err := u.db.Find(&mitra).Error; err != nil {
		return nil, err
	}
	for _, m := range mitra {
		snap.mitra[m.NamaMitra] = m.ID
	}

	var departemen []model.Departemen
	if err := u.db.Find(&departemen).Error; err != nil {
		return nil, err
	}
	for _, d := range departemen {
		if snap.departemen[d.MitraID] == nil {
			snap.departemen[d.MitraID] = map[string]uint{}
		}
		snap.departemen[d.MitraID][d.NamaDepartemen] = d.ID
	}

	var seksi []model.Seksi
	if err := u.db.Find(&seksi).Error; err != nil {
		return nil, err
	}
	for _, s := range seksi {
		if snap.seksi[s.DepartemenID] == nil {
			snap.seksi[s.DepartemenID] = map[string]uint{}
		}
		snap.seksi[s.DepartemenID][s.NamaSeksi] = s.ID
	}

	var jabatan []model.Jabatan
	if err := u.db.Find(&jabatan).Error; err != nil {
		return nil, err
	}
	for _, j := range jabatan {
		snap.jabatan[j.NamaJabatan] = j.ID
	}

	nikSet := map[string]bool{}
	var nikKTPs, noKKs []string
	for _, r := range rows {
		if nik := strings.TrimSpace(r.NIK); nik != "" {
			nikSet[nik] = true
		}
		if v := strings.TrimSpace(r.NIKKTP); v != "" {
			nikKTPs = append(nikKTPs, v)
		}
		if v := strings.TrimSpace(r.NoKK); v != "" {
			noKKs = append(noKKs, v)
		}
	}
	niks := make([]string, 0, len(nikSet))
	for nik := range nikSet {
		niks = append(niks, nik)
	}
	if len(niks) == 0 {
		return snap, nil
	}

	var pegawai []model.Pegawai
	if err := u.db.Where("nik IN ?", niks).Find(&pegawai).Error; err != nil {
		return nil, err
	}
	for _, p := range pegawai {
		snap.pegawaiSeNIK[p.NIK] = append(snap.pegawaiSeNIK[p.NIK], p)
	}

	var status []model.StatusLog
	if err := u.db.Where("nik IN ?", niks).Order("tgl_mulai").Find(&status).Error; err != nil {
		return nil, err
	}
	for _, s := range status {
		switch s.Tipe {
		case model.StatusBlacklist:
			if s.TglSelesai == nil {
				snap.blacklist[s.NIK] = true
			}
		case model.StatusNonaktif:
			if s.TglMulai > snap.nonaktifTerakhir[s.NIK] {
				snap.nonaktifTerakhir[s.NIK] = s.TglMulai
			}
		}
	}

	var mutasi []model.MutasiRequest
	if err := u.db.Where("nik IN ? AND status = ?", niks, model.MutasiApproved).Find(&mutasi).Error; err != nil {
		return nil, err
	}
	for _, m := range mutasi {
		snap.mutasiApproved[kunciMutasi(m.NIK, m.AsalMitraID, m.TujuanMitraID)] = true
	}

	if len(nikKTPs) > 0 || len(noKKs) > 0 {
		q := u.db.Table("pegawais").
			Select("pegawais.id AS pegawai_id, pegawais.nik AS nik, karyawans.nik_ktp AS nik_ktp, karyawans.no_kk AS no_kk, mitras.nama_mitra AS nama_mitra").
			Joins("JOIN karyawans ON karyawans.id = pegawais.karyawan_id").
			Joins("JOIN mitras ON mitras.id = pegawais.mitra_id").
			Where("pegawais.deleted_at IS NULL")
		switch {
		case len(nikKTPs) > 0 && len(noKKs) > 0:
			q = q.Where("karyawans.nik_ktp IN ? OR karyawans.no_kk IN ?", nikKTPs, noKKs)
		case len(nikKTPs) > 0:
			q = q.Where("karyawans.nik_ktp IN ?", nikKTPs)
		default:
			q = q.Where("karyawans.no_kk IN ?", noKKs)
		}
		if err := q.Scan(&snap.identitas).Error; err != nil {
			return nil, err
		}
	}

	return snap, nil
}

func kunciMutasi(nik string, asal, tujuan uint) string {
	return fmt.Sprintf("%s|%d|%d", nik, asal, tujuan)
}

// konflikDariSnapshot menerapkan aturan DeteksiKonflik atas kandidat yang
// sudah dimuat di memori.
func konflikDariSnapshot(kandidat []kandidatKonflik, nikKTP, noKK, nik string, excludeID uint) *Konflik {
	nikKTP = strings.TrimSpace(nikKTP)
	noKK = strings.TrimSpace(noKK)
	if nikKTP == "" && noKK == "" {
		return nil
	}
	for _, k := range kandidat {
		if k.PegawaiID == excludeID || k.NIK == nik {
			continue
		}
		if nikKTP != "" && k.NIKKTP != nil && *k.NIKKTP == nikKTP {
			return &Konflik{Field: "nik_ktp", Nilai: nikKTP, NIK: k.NIK, NamaMitra: k.NamaMitra}
		}
		if noKK != "" && k.NoKK != nil && *k.NoKK == noKK {
			return &Konflik{Field: "no_kk", Nilai: noKK, NIK: k.NIK, NamaMitra: k.NamaMitra}
		}
	}
	return nil
}
