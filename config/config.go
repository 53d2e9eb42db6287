package config

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort    string
	AppEnv     string
	JWTSecret  string
	CORSOrigin string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// ไฟล์โครงสร้างรายวิชา (Excel) — ไม่มีไฟล์ = หลักสูตรว่าง ระบบยังรันต่อได้
	CurriculumPath string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		AppPort:    get("APP_PORT", "4000"),
		AppEnv:     get("APP_ENV", "dev"),
		JWTSecret:  get("JWT_SECRET", "dev-secret"),
		CORSOrigin: get("CORS_ORIGIN", "*"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "attendance"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		CurriculumPath: get("CURRICULUM_XLSX_PATH", "โครงสร้างรายวิชา-ทุกห้อง-ม1-ม6.xlsx"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
