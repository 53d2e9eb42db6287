package models

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"full_name" gorm:"size:120;not null"`
	Level        string    `json:"level" gorm:"size:20;not null"` // เช่น "ม.6"
	Room         string    `json:"room" gorm:"size:10;not null"`  // เช่น "6/2"
	Role         string    `json:"role" gorm:"size:20;not null"`  // "student" | "teacher"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
