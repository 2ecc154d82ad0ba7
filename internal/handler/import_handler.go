package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/lulusbagos/one-db-mitra-sub000/internal/usecase"
)

type ImportHandler struct {
	uc *usecase.ImportUsecase
}

func NewImportHandler(uc *usecase.ImportUsecase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Urutan kolom template import. Baris pertama = header.
var kolomImport = []string{
	"NIK", "Nama", "Mitra", "Departemen", "Seksi", "Jabatan",
	"NIK KTP", "No KK", "Tempat Lahir", "Tanggal Lahir", "Jenis Kelamin",
	"Agama", "Alamat", "No HP", "Email", "Tgl Masuk",
}

// Upload menerima file .xlsx, memparse barisnya, lalu menjalankan
// klasifikasi + penerapan per baris.
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	rows, err := h.parseFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File tidak berisi data"})
	}

	rekap, err := h.uc.Jalankan(rows, aktorDariClaims(c))
	if err != nil {
		return jawabError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Import selesai", "data": rekap})
}

// Preview hanya mengklasifikasikan tanpa menulis apa-apa.
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	rows, err := h.parseFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hasil, err := h.uc.Klasifikasikan(rows, aktorDariClaims(c))
	if err != nil {
		return jawabError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Klasifikasi selesai", "data": hasil})
}

// Template menghasilkan file xlsx kosong dengan header kolom yang diharapkan.
func (h *ImportHandler) Template(c *fiber.Ctx) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, judul := range kolomImport {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, judul)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat template"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="template_import_pegawai.xlsx"`)
	return c.Send(buf.Bytes())
}

func (h *ImportHandler) parseFile(c *fiber.Ctx) ([]usecase.BarisImport, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File import wajib dilampirkan")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File tidak bisa dibuka")
	}
	defer file.Close()

	xlsx, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File bukan xlsx yang valid")
	}
	defer xlsx.Close()

	sheet := xlsx.GetSheetName(0)
	rawRows, err := xlsx.GetRows(sheet)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gagal membaca isi file")
	}

	var rows []usecase.BarisImport
	for i, raw := range rawRows {
		if i == 0 {
			continue // header
		}
		kolom := func(idx int) string {
			if idx < len(raw) {
				return raw[idx]
			}
			return ""
		}
		baris := usecase.BarisImport{
			Nomor:          i + 1,
			NIK:            kolom(0),
			Nama:           kolom(1),
			NamaMitra:      kolom(2),
			NamaDepartemen: kolom(3),
			NamaSeksi:      kolom(4),
			NamaJabatan:    kolom(5),
			NIKKTP:         kolom(6),
			NoKK:           kolom(7),
			TempatLahir:    kolom(8),
			TanggalLahir:   kolom(9),
			JenisKelamin:   kolom(10),
			Agama:          kolom(11),
			Alamat:         kolom(12),
			NoHP:           kolom(13),
			Email:          kolom(14),
			TglMasuk:       kolom(15),
		}
		rows = append(rows, baris)
	}
	return rows, nil
}
