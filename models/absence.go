package models

import "time"

// บันทึกการลา 1 แถว = 1 วิชาใน 1 วัน (ชั่วโมง = จำนวนคาบของวิชานั้นในวันนั้น)
type Absence struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Date        time.Time `json:"date" gorm:"index;not null"`
	SubjectCode string    `json:"subjectCode" gorm:"size:30;not null"`
	Hours       int       `json:"hours" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"size:255"`
	CreatedAt   time.Time `json:"-"`
}
