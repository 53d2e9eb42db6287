package models

import "time"

// รายวิชาที่นักเรียนลงทะเบียน — derive ใหม่ทุกครั้งที่บันทึกตารางเรียน
// (distinct subjectCode ในตาราง + metadata จากหลักสูตร)
type Enrollment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	Code       string    `json:"code" gorm:"size:30;not null"`
	Name       string    `json:"name" gorm:"size:200;not null"`
	TotalHours int       `json:"totalHours" gorm:"not null"` // ชั่วโมงในหลักสูตร
	Credits    float64   `json:"credits" gorm:"not null"`    // หน่วยกิต
	CreatedAt  time.Time `json:"-"`
}
