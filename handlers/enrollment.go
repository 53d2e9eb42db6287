package handlers

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/curriculum"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

// SlotInput คือ 1 คาบที่ client ส่งมา (ใช้ทั้งตารางส่วนตัวและตารางระดับห้อง)
type SlotInput struct {
	Day         string `json:"day"`
	Period      int    `json:"period"`
	SubjectCode string `json:"subjectCode"`
}

// กรองแบบผ่อนปรน: slot ที่ข้อมูลไม่ครบ/คาบนอกช่วง 1–10 ทิ้งเงียบ ไม่ reject ทั้งก้อน
func filterSlots(in []SlotInput) []SlotInput {
	out := make([]SlotInput, 0, len(in))
	for _, s := range in {
		s.Day = strings.TrimSpace(s.Day)
		s.SubjectCode = strings.TrimSpace(s.SubjectCode)
		if _, ok := schoolDays[s.Day]; !ok {
			continue
		}
		if s.Period < 1 || s.Period > 10 {
			continue
		}
		if s.SubjectCode == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// replaceStudentTimetable ลบตาราง+enrollment เดิมทั้งหมดแล้วใส่ชุดใหม่ใน transaction เดียว
// จากนั้น materialize enrollment จาก distinct subjectCode โดยเติม metadata จากหลักสูตร
// ของ (level, room) ของนักเรียน — ไม่เจอในหลักสูตรใช้รหัสแทนชื่อ ชั่วโมง/หน่วยกิต = 0
// ชุดว่างหลังกรอง = ตารางว่าง เป็นสถานะที่ตั้งใจได้ ("ยังไม่ตั้งตารางเรียน")
func replaceStudentTimetable(db *gorm.DB, curr *curriculum.Service, user *models.User, slots []SlotInput) error {
	filtered := filterSlots(slots)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.TimetableSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if len(filtered) == 0 {
			return nil
		}

		rows := make([]models.TimetableSlot, 0, len(filtered))
		codes := make([]string, 0, len(filtered))
		seen := map[string]struct{}{}
		for _, s := range filtered {
			rows = append(rows, models.TimetableSlot{
				UserID:      user.ID,
				Day:         s.Day,
				Period:      s.Period,
				SubjectCode: s.SubjectCode,
			})
			if _, dup := seen[s.SubjectCode]; !dup {
				seen[s.SubjectCode] = struct{}{}
				codes = append(codes, s.SubjectCode)
			}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		meta := curr.MetaByCode(user.Level, user.Room)
		enrolls := make([]models.Enrollment, 0, len(codes))
		for _, code := range codes {
			e := models.Enrollment{UserID: user.ID, Code: code, Name: code}
			if m, ok := meta[code]; ok {
				e.Name = m.Name
				e.TotalHours = m.TotalHours
				e.Credits = m.Credits
			}
			enrolls = append(enrolls, e)
		}
		return tx.Create(&enrolls).Error
	})
}
