package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/config"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate แยกออกมาให้ test เรียกกับ sqlite ได้ด้วย
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.TimetableSlot{},
		&models.ClassTimetableSlot{},
		&models.Enrollment{},
		&models.Absence{},
	)
}

// บัญชีครู admin ประจำระบบ — สร้างครั้งเดียว ถ้ามีอยู่แล้วแค่ยกระดับ role ให้ถูก
func EnsureAdminTeacher() {
	var existing models.User
	err := DB.Where("username = ?", "Totoadmin").First(&existing).Error
	if err == nil {
		if existing.Role != "teacher" {
			existing.Role = "teacher"
			if err := DB.Save(&existing).Error; err != nil {
				log.Printf("[seed] warn: promote admin teacher failed: %v", err)
			}
		}
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("[seed] warn: query admin teacher failed: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Sriaug123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] warn: hash admin password failed: %v", err)
		return
	}
	u := models.User{
		Username:     "Totoadmin",
		PasswordHash: string(hash),
		FullName:     "Admin Teacher",
		Level:        "ม.6",
		Room:         "6/2",
		Role:         "teacher",
	}
	if err := DB.Create(&u).Error; err != nil {
		log.Printf("[seed] warn: create admin teacher failed: %v", err)
		return
	}
	log.Printf("[seed] created admin teacher: %s", u.Username)
}
