package usecase

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// Perubahan = satu tuple (field, nilai lama, nilai baru) yang sudah
// dinormalisasi jadi teks. Menambah field baru yang diaudit cukup satu
// baris registrasi di pemanggil, bukan call site pembanding baru.
type Perubahan struct {
	Field string
	Lama  string
	Baru  string
}

// AuditDiff mengumpulkan pembanding field lalu menyaring yang nilainya
// benar-benar berubah. Field yang sama persis tidak menghasilkan entri.
type AuditDiff struct {
	perubahan []Perubahan
}

func NewAuditDiff() *AuditDiff {
	return &AuditDiff{}
}

func (d *AuditDiff) Teks(field, lama, baru string) {
	d.tambah(field, strings.TrimSpace(lama), strings.TrimSpace(baru))
}

func (d *AuditDiff) Tanggal(field, lama, baru string) {
	d.tambah(field, NormalisasiTanggal(lama), NormalisasiTanggal(baru))
}

func (d *AuditDiff) TanggalPtr(field string, lama, baru *string) {
	l, b := "", ""
	if lama != nil {
		l = NormalisasiTanggal(*lama)
	}
	if baru != nil {
		b = NormalisasiTanggal(*baru)
	}
	d.tambah(field, l, b)
}

func (d *AuditDiff) Bool(field string, lama, baru bool) {
	d.tambah(field, strconv.FormatBool(lama), strconv.FormatBool(baru))
}

func (d *AuditDiff) UintPtr(field string, lama, baru *uint) {
	l, b := "", ""
	if lama != nil {
		l = strconv.FormatUint(uint64(*lama), 10)
	}
	if baru != nil {
		b = strconv.FormatUint(uint64(*baru), 10)
	}
	d.tambah(field, l, b)
}

func (d *AuditDiff) tambah(field, lama, baru string) {
	if lama == baru {
		return
	}
	d.perubahan = append(d.perubahan, Perubahan{Field: field, Lama: lama, Baru: baru})
}

func (d *AuditDiff) Perubahan() []Perubahan {
	return d.perubahan
}

func (d *AuditDiff) Kosong() bool {
	return len(d.perubahan) == 0
}

// NormalisasiTanggal menerima beberapa format tanggal yang lazim di
// spreadsheet dan form, lalu menyeragamkan ke YYYY-MM-DD. String yang
// tidak bisa diparse dikembalikan apa adanya (sudah di-trim).
func NormalisasiTanggal(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	layouts := []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05", "02-01-2006"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// tulisAudit menulis satu baris AuditLog per perubahan, di dalam transaksi
// yang SAMA dengan penulisan Pegawai/Karyawan-nya.
func tulisAudit(tx *gorm.DB, entitas string, pegawaiID, karyawanID *uint, aktor Aktor, sumber string, diff *AuditDiff) error {
	if diff.Kosong() {
		return nil
	}
	entri := make([]model.AuditLog, 0, len(diff.perubahan))
	for _, p := range diff.perubahan {
		entri = append(entri, model.AuditLog{
			PegawaiID:  pegawaiID,
			KaryawanID: karyawanID,
			Entitas:    entitas,
			Field:      p.Field,
			NilaiLama:  p.Lama,
			NilaiBaru:  p.Baru,
			Aktor:      aktor.Username,
			Sumber:     sumber,
		})
	}
	return tx.Create(&entri).Error
}
