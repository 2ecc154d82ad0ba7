package notifier

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/lulusbagos/one-db-mitra-sub000/config"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// Mailer mengirim notifikasi mutasi lewat SMTP. Collaborator murni:
// dipanggil fire-and-forget dari usecase, kegagalan kirim hanya dicatat
// ke log dan tidak pernah menggagalkan operasi inti.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string // alamat tim HR pusat
	log    *logrus.Logger
}

func NewMailer(log *logrus.Logger) *Mailer {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		return nil // tanpa konfigurasi SMTP, notifikasi dimatikan
	}
	return &Mailer{
		dialer: gomail.NewDialer(
			host,
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USER", ""),
			config.GetEnv("SMTP_PASS", ""),
		),
		from: config.GetEnv("SMTP_FROM", "noreply@one-db-mitra.local"),
		to:   config.GetEnv("SMTP_HR_TO", ""),
		log:  log,
	}
}

func (m *Mailer) KirimPengajuanMutasi(req model.MutasiRequest) {
	subjek := fmt.Sprintf("Pengajuan Mutasi NIK %s", req.NIK)
	isi := fmt.Sprintf(
		"Ada pengajuan mutasi baru.\n\nNIK: %s\nMitra asal: %d\nMitra tujuan: %d\nDiajukan oleh: %s\nCatatan: %s\n",
		req.NIK, req.AsalMitraID, req.TujuanMitraID, req.DiajukanOleh, req.Catatan)
	m.kirim(subjek, isi)
}

func (m *Mailer) KirimKeputusanMutasi(req model.MutasiRequest) {
	subjek := fmt.Sprintf("Keputusan Mutasi NIK %s: %s", req.NIK, req.Status)
	isi := fmt.Sprintf(
		"Pengajuan mutasi sudah diputuskan.\n\nNIK: %s\nStatus: %s\nDiputuskan oleh: %s\nCatatan: %s\n",
		req.NIK, req.Status, req.DiputuskanOleh, req.Catatan)
	m.kirim(subjek, isi)
}

func (m *Mailer) kirim(subjek, isi string) {
	if m == nil || m.to == "" {
		return
	}
	pesan := gomail.NewMessage()
	pesan.SetHeader("From", m.from)
	pesan.SetHeader("To", m.to)
	pesan.SetHeader("Subject", subjek)
	pesan.SetBody("text/plain", isi)

	if err := m.dialer.DialAndSend(pesan); err != nil {
		m.log.WithError(err).Warn("Gagal mengirim email notifikasi mutasi")
	}
}
