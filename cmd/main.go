package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/config"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/curriculum"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/database"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/routes"
)

func main() {
	// .env มีก็โหลด ไม่มีก็ใช้ env ของระบบ
	_ = godotenv.Load()
	cfg := config.Load()

	// เชื่อมต่อฐานข้อมูล (ถ้า DB ยังไม่ขึ้น โปรแกรมจะ error ทันที — เหมาะสำหรับ early fail)
	database.Connect(cfg)
	database.EnsureAdminTeacher()

	// โครงสร้างรายวิชาโหลดจาก Excel — warm ล่วงหน้า ไฟล์หายระบบยังรันต่อ
	curr := curriculum.NewService(cfg.CurriculumPath)
	go curr.Warm()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
	}))

	routes.Register(e, cfg, curr)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
