package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/apperror"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// Masa tunggu wajib (hari) sejak nonaktif terakhir sebelum sebuah NIK boleh
// direkrut ulang di mitra lain tanpa override privileged.
const MasaCoolingOffHari = 90

// Riwayat = hasil resolusi riwayat mobilitas sebuah NIK terhadap mitra tujuan.
type Riwayat struct {
	Klasifikasi      model.Klasifikasi
	PegawaiAsal      *model.Pegawai // ikatan terakhir di mitra LAIN, nil untuk rekrut
	AsalMitraID      *uint
	TglNonaktifAkhir string // tgl_mulai event nonaktif paling baru, kosong kalau tidak ada
}

// ResolveRiwayat menentukan apakah sebuah NIK yang mau masuk ke mitra tujuan
// adalah rekrut baru, kontrak yang masih berjalan di mitra lain, atau rehire.
// Riwayat nonaktif dibaca global (mitra manapun), bukan per pasangan mitra.
func ResolveRiwayat(db *gorm.DB, nik string, tujuanMitraID uint) (Riwayat, error) {
	var pegawai model.Pegawai
	err := db.Where("nik = ? AND mitra_id <> ?", nik, tujuanMitraID).
		Order("id DESC").
		First(&pegawai).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Riwayat{Klasifikasi: model.KlasifikasiRekrut}, nil
	}
	if err != nil {
		return Riwayat{}, err
	}

	tglNonaktif, err := TglNonaktifTerakhir(db, nik)
	if err != nil {
		return Riwayat{}, err
	}

	r := Riwayat{
		PegawaiAsal:      &pegawai,
		AsalMitraID:      &pegawai.MitraID,
		TglNonaktifAkhir: tglNonaktif,
	}
	if tglNonaktif == "" {
		r.Klasifikasi = model.KlasifikasiKontrak
	} else {
		r.Klasifikasi = model.KlasifikasiRehire
	}
	return r, nil
}

// GerbangMobilitas memeriksa kelayakan masuk mitra tujuan untuk aktor biasa:
//   - kontrak: wajib ada MutasiRequest approved asal->tujuan untuk NIK itu
//   - rehire : minimal 90 hari sejak nonaktif terakhir
// Aktor privileged lolos keduanya. Mengembalikan klasifikasi penempatan yang
// akhirnya dicatat (mutasi kalau masuk lewat persetujuan).
func GerbangMobilitas(db *gorm.DB, r Riwayat, nik string, tujuanMitraID uint, tglMasuk string, aktor Aktor) (model.Klasifikasi, error) {
	if aktor.Privileged {
		return r.Klasifikasi, nil
	}

	switch r.Klasifikasi {
	case model.KlasifikasiKontrak:
		var count int64
		err := db.Model(&model.MutasiRequest{}).
			Where("nik = ? AND asal_mitra_id = ? AND tujuan_mitra_id = ? AND status = ?",
				nik, *r.AsalMitraID, tujuanMitraID, model.MutasiApproved).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		return gerbangKontrak(nik, count > 0)

	case model.KlasifikasiRehire:
		return gerbangRehire(nik, r.TglNonaktifAkhir, tglMasuk)
	}

	return r.Klasifikasi, nil
}

// gerbangKontrak: pindah dari kontrak aktif butuh persetujuan mitra asal.
// Lolos gerbang ini berarti penempatannya tercatat sebagai mutasi.
func gerbangKontrak(nik string, adaApproved bool) (model.Klasifikasi, error) {
	if !adaApproved {
		return "", apperror.Conflict("nik",
			fmt.Sprintf("NIK %s masih terikat kontrak aktif di mitra lain; butuh persetujuan mutasi dari mitra asal", nik))
	}
	return model.KlasifikasiMutasi, nil
}

// gerbangRehire: rekrut ulang paling cepat 90 hari setelah nonaktif terakhir.
func gerbangRehire(nik, tglNonaktifAkhir, tglMasuk string) (model.Klasifikasi, error) {
	nonaktif, err := time.Parse("2006-01-02", tglNonaktifAkhir)
	if err != nil {
		return "", apperror.New(apperror.CodeInternal, "Tanggal nonaktif terakhir tidak valid: "+tglNonaktifAkhir)
	}
	masuk := time.Now()
	if s := NormalisasiTanggal(tglMasuk); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return "", apperror.Validation("tgl_masuk", "Tanggal masuk tidak valid: "+tglMasuk)
		}
		masuk = t
	}
	boleh := nonaktif.AddDate(0, 0, MasaCoolingOffHari)
	if masuk.Before(boleh) {
		return "", apperror.Conflict("tgl_masuk",
			fmt.Sprintf("NIK %s baru nonaktif per %s; rekrut ulang paling cepat %s (masa tunggu %d hari)",
				nik, tglNonaktifAkhir, boleh.Format("2006-01-02"), MasaCoolingOffHari))
	}
	return model.KlasifikasiRehire, nil
}

// Notifier = collaborator email keluar. Tidak pernah menggagalkan operasi inti.
type Notifier interface {
	KirimPengajuanMutasi(req model.MutasiRequest)
	KirimKeputusanMutasi(req model.MutasiRequest)
}

type MutasiUsecase struct {
	db       *gorm.DB
	notifier Notifier
	log      *logrus.Logger
}

func NewMutasiUsecase(db *gorm.DB, notifier Notifier, log *logrus.Logger) *MutasiUsecase {
	return &MutasiUsecase{db: db, notifier: notifier, log: log}
}

type AjukanMutasiInput struct {
	NIK           string `json:"nik"`
	TujuanMitraID uint   `json:"tujuan_mitra_id"`
	Catatan       string `json:"catatan"`
}

// Ajukan membuat MutasiRequest pending dari mitra tujuan. Mitra asal
// diresolve dari ikatan terakhir NIK tersebut. Duplikat pending untuk triple
// NIK+asal+tujuan ditolak; pengecekannya diulang di dalam transaksi.
func (u *MutasiUsecase) Ajukan(in AjukanMutasiInput, aktor Aktor) (*model.MutasiRequest, error) {
	in.NIK = strings.TrimSpace(in.NIK)
	if in.NIK == "" {
		return nil, apperror.Validation("nik", "NIK wajib diisi")
	}
	if in.TujuanMitraID == 0 {
		return nil, apperror.Validation("tujuan_mitra_id", "Mitra tujuan wajib diisi")
	}
	if !aktor.ScopeMitra(in.TujuanMitraID) {
		return nil, apperror.New(apperror.CodeAuthorization, "Akses ditolak")
	}

	var req model.MutasiRequest
	err := u.db.Transaction(func(tx *gorm.DB) error {
		var asal model.Pegawai
		err := kunciUpdate(tx).
			Where("nik = ? AND mitra_id <> ?", in.NIK, in.TujuanMitraID).
			Order("id DESC").
			First(&asal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound, "Tidak ada ikatan kerja NIK "+in.NIK+" di mitra lain")
		}
		if err != nil {
			return err
		}

		var pending int64
		err = tx.Model(&model.MutasiRequest{}).
			Where("nik = ? AND asal_mitra_id = ? AND tujuan_mitra_id = ? AND status = ?",
				in.NIK, asal.MitraID, in.TujuanMitraID, model.MutasiPending).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return apperror.Conflict("nik", "Sudah ada pengajuan mutasi pending untuk NIK "+in.NIK+" pada pasangan mitra yang sama")
		}

		req = model.MutasiRequest{
			NIK:           in.NIK,
			KaryawanID:    &asal.KaryawanID,
			AsalMitraID:   asal.MitraID,
			TujuanMitraID: in.TujuanMitraID,
			TglPengajuan:  time.Now().Format("2006-01-02"),
			DiajukanOleh:  aktor.Username,
			Status:        model.MutasiPending,
			Catatan:       strings.TrimSpace(in.Catatan),
		}
		return tx.Create(&req).Error
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"nik":    req.NIK,
		"asal":   req.AsalMitraID,
		"tujuan": req.TujuanMitraID,
	}).Info("Pengajuan mutasi dibuat")
	if u.notifier != nil {
		go u.notifier.KirimPengajuanMutasi(req)
	}
	return &req, nil
}

type KeputusanMutasiInput struct {
	Setuju  bool   `json:"setuju"`
	Catatan string `json:"catatan"`
}

// Putuskan menyetujui/menolak sebuah pengajuan. Hanya pejabat puncak mitra
// ASAL (tanpa scoping departemen, atau access level maksimum yang terdefinisi)
// atau aktor privileged global yang boleh memutus. Persetujuan TIDAK membuat
// pegawai tujuan; mitra tujuan tetap melakukan aksi rekrutnya sendiri.
func (u *MutasiUsecase) Putuskan(requestID uint, in KeputusanMutasiInput, aktor Aktor) error {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		var req model.MutasiRequest
		err := kunciUpdate(tx).First(&req, requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound, "Pengajuan mutasi tidak ditemukan")
		}
		if err != nil {
			return err
		}
		if req.Status != model.MutasiPending {
			return apperror.Conflict("status", "Pengajuan mutasi sudah diputuskan")
		}

		if !aktor.Privileged {
			if aktor.MitraID == nil || *aktor.MitraID != req.AsalMitraID {
				return apperror.New(apperror.CodeAuthorization, "Akses ditolak")
			}
			maxLevel, err := maxAccessLevel(tx)
			if err != nil {
				return err
			}
			if !aktor.PuncakMitra(maxLevel) {
				return apperror.New(apperror.CodeAuthorization, "Akses ditolak")
			}
		}

		tgl := time.Now().Format("2006-01-02")
		if in.Setuju {
			req.Status = model.MutasiApproved
		} else {
			req.Status = model.MutasiRejected
		}
		req.TglKeputusan = &tgl
		req.DiputuskanOleh = aktor.Username
		if strings.TrimSpace(in.Catatan) != "" {
			req.Catatan = strings.TrimSpace(in.Catatan)
		}
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		u.log.WithFields(logrus.Fields{
			"request_id": req.ID,
			"nik":        req.NIK,
			"status":     req.Status,
			"oleh":       aktor.Username,
		}).Info("Pengajuan mutasi diputuskan")
		if u.notifier != nil {
			go u.notifier.KirimKeputusanMutasi(req)
		}
		return nil
	})
	return err
}

// maxAccessLevel = access level tertinggi yang terdefinisi pada tabel role.
func maxAccessLevel(db *gorm.DB) (int, error) {
	var max int
	err := db.Model(&model.Role{}).Select("COALESCE(MAX(access_level), 0)").Scan(&max).Error
	return max, err
}
