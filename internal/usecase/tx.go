package usecase

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kunciUpdate menambahkan SELECT ... FOR UPDATE supaya pengecekan keputusan
// (konflik identitas, blacklist, gerbang mobilitas, pending mutasi) dan
// penulisannya berjalan atomik terhadap penulis lain pada NIK yang sama.
// SQLite (dipakai di test) tidak mengenal FOR UPDATE; di sana transaksinya
// sudah serial sehingga klausanya dilewati.
func kunciUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
