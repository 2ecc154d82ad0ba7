package database

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lulusbagos/one-db-mitra-sub000/config"
	"github.com/lulusbagos/one-db-mitra-sub000/internal/model"
)

// Seed mengisi data awal: role + permission, jabatan, contoh mitra beserta
// hierarkinya, dan satu akun Super Admin. Idempotent via FirstOrCreate.
func Seed(db *gorm.DB) error {
	permissions := []string{"pegawai_tulis", "pegawai_blacklist", "pegawai_import", "mutasi_ajukan"}
	permByName := map[string]model.Permission{}
	for _, nama := range permissions {
		p := model.Permission{NamaPermission: nama}
		if err := db.Where("nama_permission = ?", nama).FirstOrCreate(&p).Error; err != nil {
			return err
		}
		permByName[nama] = p
	}

	roles := []struct {
		Nama        string
		Level       int
		Privileged  bool
		Permissions []string
	}{
		{"Super Admin", 99, true, permissions},
		{"Kepala Mitra", 10, false, []string{"pegawai_tulis", "pegawai_blacklist", "pegawai_import", "mutasi_ajukan"}},
		{"Admin HR", 5, false, []string{"pegawai_tulis", "pegawai_import", "mutasi_ajukan"}},
		{"Staff", 1, false, nil},
	}
	var superAdmin model.Role
	for _, r := range roles {
		role := model.Role{NamaRole: r.Nama, AccessLevel: r.Level, IsPrivileged: r.Privileged}
		if err := db.Where("nama_role = ?", r.Nama).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		var perms []model.Permission
		for _, nama := range r.Permissions {
			perms = append(perms, permByName[nama])
		}
		if len(perms) > 0 {
			if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
				return err
			}
		}
		if r.Nama == "Super Admin" {
			superAdmin = role
		}
	}

	for _, nama := range []string{"Operator", "Supervisor", "Manager"} {
		jabatan := model.Jabatan{NamaJabatan: nama}
		if err := db.Where("nama_jabatan = ?", nama).FirstOrCreate(&jabatan).Error; err != nil {
			return err
		}
	}

	for _, namaMitra := range []string{"PT Mitra Utama", "PT Mitra Sejahtera"} {
		mitra := model.Mitra{NamaMitra: namaMitra, IsActive: true}
		if err := db.Where("nama_mitra = ?", namaMitra).FirstOrCreate(&mitra).Error; err != nil {
			return err
		}
		for _, namaDept := range []string{"Produksi", "HRGA"} {
			dept := model.Departemen{MitraID: mitra.ID, NamaDepartemen: namaDept}
			if err := db.Where("mitra_id = ? AND nama_departemen = ?", mitra.ID, namaDept).FirstOrCreate(&dept).Error; err != nil {
				return err
			}
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.GetEnv("SEED_ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{
		Username: "superadmin",
		Password: string(hashed),
		Nama:     "Super Admin",
		RoleID:   superAdmin.ID,
		IsActive: true,
	}
	if err := db.Where("username = ?", admin.Username).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	logrus.Info("Seeding selesai")
	return nil
}
