package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
)

// วันที่ลาทั้งหมดตีความเป็นวันตามปฏิทินไทย (UTC+7 คงที่ ไม่พึ่ง tzdata ของเครื่อง)
var bangkok = time.FixedZone("Asia/Bangkok", 7*60*60)

// โรงเรียนไม่มีเรียนเสาร์อาทิตย์
var thaiWeekday = map[time.Weekday]string{
	time.Monday:    "จันทร์",
	time.Tuesday:   "อังคาร",
	time.Wednesday: "พุธ",
	time.Thursday:  "พฤหัสบดี",
	time.Friday:    "ศุกร์",
}

var schoolDays = map[string]struct{}{
	"จันทร์":   {},
	"อังคาร":   {},
	"พุธ":      {},
	"พฤหัสบดี": {},
	"ศุกร์":    {},
}

// parseDay แปลง "YYYY-MM-DD" → เที่ยงคืนเวลาไทยของวันนั้น
func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, bangkok)
}

// dayRange คืนช่วงครึ่งเปิด [เที่ยงคืนวันนั้น, เที่ยงคืนวันถัดไป)
func dayRange(day time.Time) (time.Time, time.Time) {
	return day, day.AddDate(0, 0, 1)
}

// user id จาก context (แนบโดย RequireAuth)
func userID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}
