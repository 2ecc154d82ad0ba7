package usecase

// Aktor = konteks pelaku yang dipakai semua operasi inti. Selalu dioper
// eksplisit sebagai parameter, tidak pernah dibaca dari state global.
// Diisi oleh handler dari claims JWT (session collaborator).
type Aktor struct {
	UserID       uint
	Username     string
	Nama         string
	Role         string
	AccessLevel  int
	Privileged   bool  // otoritas override global: lolos gerbang cooling-off, mutasi, dan blacklist
	MitraID      *uint // NULL = tidak dibatasi mitra
	DepartemenID *uint // NULL = tidak dibatasi departemen
}

// PuncakMitra: pejabat puncak sebuah mitra = tidak di-scope departemen,
// atau memegang access level tertinggi yang terdefinisi di sistem.
func (a Aktor) PuncakMitra(maxLevel int) bool {
	if a.DepartemenID == nil {
		return true
	}
	return maxLevel > 0 && a.AccessLevel >= maxLevel
}

// ScopeMitra memeriksa apakah aktor boleh bertindak atas nama mitra tertentu.
func (a Aktor) ScopeMitra(mitraID uint) bool {
	if a.Privileged || a.MitraID == nil {
		return true
	}
	return *a.MitraID == mitraID
}
