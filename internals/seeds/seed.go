// internals/seeds/seed.go
package seeds

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rumahquran_backend/internals/configs"
	"rumahquran_backend/internals/constants"
	rqModel "rumahquran_backend/internals/features/rumahquran/model"
	rqService "rumahquran_backend/internals/features/rumahquran/service"
	pModel "rumahquran_backend/internals/features/users/profile/model"
)

// SeedInitialData memastikan akun MASTER pertama dan satu Rumah Quran
// awal tersedia. Idempotent: aman dipanggil setiap boot.
func SeedInitialData(db *gorm.DB) {
	if err := seedMasterAccount(db); err != nil {
		log.Printf("⚠️ Seed akun MASTER gagal: %v", err)
	}
	if err := seedFirstRumahQuran(db); err != nil {
		log.Printf("⚠️ Seed Rumah Quran awal gagal: %v", err)
	}
}

func seedMasterAccount(db *gorm.DB) error {
	email := configs.GetEnv("SEED_MASTER_EMAIL", "admin@rumahquran.org")
	password := configs.GetEnv("SEED_MASTER_PASSWORD")
	if password == "" {
		log.Println("ℹ️ SEED_MASTER_PASSWORD kosong, lewati seed akun MASTER")
		return nil
	}

	var existing pModel.UserModel
	err := db.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil // sudah ada
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := pModel.UserModel{
			Email:        email,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		name := "Administrator Yayasan"
		role := constants.RoleMaster
		profile := pModel.ProfileModel{
			AuthUserID: &user.ID,
			Name:       &name,
			Email:      &email,
			UserRoles:  &role,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		log.Printf("✅ Akun MASTER %s dibuat", email)
		return nil
	})
}

func seedFirstRumahQuran(db *gorm.DB) error {
	var count int64
	if err := db.Unscoped().Model(&rqModel.RumahQuranModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	name := configs.GetEnv("SEED_RQ_NAME", "Rumah Quran Pusat")
	m := rqModel.RumahQuranModel{Name: name, IsActive: true}
	if err := rqService.CreateWithGeneratedCode(db, &m); err != nil {
		return err
	}
	log.Printf("✅ Rumah Quran awal dibuat: %s (%s)", m.Name, m.Code)
	return nil
}
