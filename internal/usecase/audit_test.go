package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuditDiffHanyaMencatatYangBerubah(t *testing.T) {
	diff := NewAuditDiff()
	diff.Teks("nama", "Budi", "Budi")          // sama, tidak dicatat
	diff.Teks("alamat", " Jl. Merdeka ", "Jl. Merdeka") // beda hanya spasi, tidak dicatat
	diff.Teks("no_hp", "0811", "0812")
	diff.Bool("is_active", true, true)
	diff.Bool("verified", false, true)

	perubahan := diff.Perubahan()
	require.Len(t, perubahan, 2)
	require.Equal(t, "no_hp", perubahan[0].Field)
	require.Equal(t, "0811", perubahan[0].Lama)
	require.Equal(t, "0812", perubahan[0].Baru)
	require.Equal(t, "verified", perubahan[1].Field)
	require.Equal(t, "false", perubahan[1].Lama)
	require.Equal(t, "true", perubahan[1].Baru)
}

func TestAuditDiffTanggalDinormalisasi(t *testing.T) {
	diff := NewAuditDiff()
	// Format beda tapi tanggal sama: bukan perubahan
	diff.Tanggal("tgl_masuk", "01/02/2025", "2025-02-01")
	require.True(t, diff.Kosong())

	diff.Tanggal("tgl_masuk", "2025-02-01", "2025-03-01")
	require.Len(t, diff.Perubahan(), 1)
	require.Equal(t, "2025-02-01", diff.Perubahan()[0].Lama)
	require.Equal(t, "2025-03-01", diff.Perubahan()[0].Baru)
}

func TestAuditDiffPointer(t *testing.T) {
	tgl := "2025-01-01"
	diff := NewAuditDiff()
	diff.TanggalPtr("tgl_nonaktif", nil, &tgl)

	satu := uint(1)
	diff.UintPtr("departemen_id", nil, &satu)
	diff.UintPtr("seksi_id", nil, nil)

	perubahan := diff.Perubahan()
	require.Len(t, perubahan, 2)
	require.Equal(t, "", perubahan[0].Lama)
	require.Equal(t, "2025-01-01", perubahan[0].Baru)
	require.Equal(t, "1", perubahan[1].Baru)
}

func TestNormalisasiTanggal(t *testing.T) {
	kasus := map[string]string{
		"2025-06-15":          "2025-06-15",
		"15/06/2025":          "2025-06-15",
		"15-06-2025":          "2025-06-15",
		"2025-06-15 08:30:00": "2025-06-15",
		"  2025-06-15  ":      "2025-06-15",
		"":                    "",
		"bukan tanggal":       "bukan tanggal",
	}
	for masukan, harapan := range kasus {
		require.Equal(t, harapan, NormalisasiTanggal(masukan), "input %q", masukan)
	}
}
