// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/config"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/database"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

func main() {
	// โหลด config และเชื่อม DB ตามที่ main.go ใช้จริง
	cfg := config.Load()
	database.Connect(cfg)

	username := "Totoadmin"
	password := "Sriaug123"

	// ตรวจว่ามีผู้ใช้งานชื่อเดียวกันอยู่หรือไม่
	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		if existing.Role != "teacher" {
			existing.Role = "teacher"
			if err := database.DB.Save(&existing).Error; err != nil {
				log.Fatalf("failed to promote existing user: %v", err)
			}
			fmt.Println("promoted existing user to teacher:", username)
			os.Exit(0)
		}
		fmt.Println("admin teacher already exists with username:", username)
		os.Exit(0)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		FullName:     "Admin Teacher",
		Level:        "ม.6",
		Room:         "6/2",
		Role:         "teacher",
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin teacher: %v", err)
	}

	fmt.Println("admin teacher created successfully!")
	fmt.Println("   Username:", username)
	fmt.Println("   Password:", password, "(plain, remember to change later!)")
}
