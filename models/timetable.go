package models

import "time"

// ตารางเรียนส่วนตัวของนักเรียน 1 แถว = 1 คาบ
type TimetableSlot struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Day         string    `json:"day" gorm:"size:20;not null"` // "จันทร์" .. "ศุกร์"
	Period      int       `json:"period" gorm:"not null"`      // 1–10
	SubjectCode string    `json:"subjectCode" gorm:"size:30;not null"`
	CreatedAt   time.Time `json:"-"`
}

// ตารางเรียนระดับห้อง (ครูเป็นคนตั้งค่า) ใช้เป็นค่าเริ่มต้นตอนสมัคร
type ClassTimetableSlot struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Level       string    `json:"level" gorm:"size:20;index:idx_class_slot;not null"`
	Room        string    `json:"room" gorm:"size:10;index:idx_class_slot;not null"`
	Day         string    `json:"day" gorm:"size:20;not null"`
	Period      int       `json:"period" gorm:"not null"`
	SubjectCode string    `json:"subjectCode" gorm:"size:30;not null"`
	CreatedAt   time.Time `json:"-"`
}
