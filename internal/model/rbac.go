package model

import "gorm.io/gorm"

// Role dengan AccessLevel berjenjang. Pemegang level tertinggi di sebuah
// mitra (atau user tanpa scoping departemen) dianggap pejabat puncak mitra.
// IsPrivileged = otoritas override global (lolos gerbang mobilitas/blacklist).
type Role struct {
	gorm.Model
	NamaRole     string       `json:"nama_role" gorm:"unique;not null"`
	AccessLevel  int          `json:"access_level" gorm:"default:1"`
	IsPrivileged bool         `json:"is_privileged" gorm:"default:false"`
	Permissions  []Permission `json:"permissions" gorm:"many2many:role_permissions;"`
	Users        []User       `json:"users"`
}

type Permission struct {
	gorm.Model
	NamaPermission string `json:"nama_permission" gorm:"unique;not null"`
}

// User = aktor yang login (session collaborator). Scope mitra/departemen
// NULL berarti tidak dibatasi pada dimensi tersebut.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"unique;not null"`
	Password     string `json:"-"`
	Nama         string `json:"nama"`
	RoleID       uint   `json:"role_id"`
	MitraID      *uint  `json:"mitra_id"`
	DepartemenID *uint  `json:"departemen_id"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`

	// Relasi
	Role  Role   `json:"role" gorm:"foreignKey:RoleID"`
	Mitra *Mitra `json:"mitra" gorm:"foreignKey:MitraID"`
}
