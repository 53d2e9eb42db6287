package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/database"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

type AbsenceHandler struct{}

func NewAbsenceHandler() *AbsenceHandler { return &AbsenceHandler{} }

type recordAbsenceReq struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

// POST /api/absences — บันทึกการลา 1 วัน
// แตกเป็น 1 แถวต่อวิชาตามตารางเรียนของวันนั้น (ชั่วโมง = จำนวนคาบ, 1 คาบ = 1 ชั่วโมง)
// กันลงวันเดิมซ้ำ: มีแถวของวันนั้นอยู่แล้ว = ปฏิเสธทั้งก้อน ไม่เขียนทับบางส่วน
func (h *AbsenceHandler) Create(c echo.Context) error {
	var req recordAbsenceReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if strings.TrimSpace(req.Date) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "DATE_REQUIRED",
			"message": "ต้องระบุวันที่ลา (date)",
		})
	}

	day, err := parseDay(strings.TrimSpace(req.Date))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "INVALID_DATE",
			"message": "รูปแบบวันที่ไม่ถูกต้อง",
		})
	}

	thaiDay, ok := thaiWeekday[day.Weekday()]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "DATE_NOT_SCHOOL_DAY",
			"message": "วันที่ที่เลือกไม่ใช่วันจันทร์-ศุกร์",
		})
	}

	uid := userID(c)
	start, end := dayRange(day)

	// กันลงวันเดิมซ้ำ (ตรวจทั้งวัน ไม่ใช่รายวิชา)
	var existed models.Absence
	err = database.DB.Where("user_id = ? AND date >= ? AND date < ?", uid, start, end).
		First(&existed).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{
			"error":   "DATE_ALREADY_RECORDED",
			"message": "วันนี้ถูกบันทึกไปแล้ว",
		})
	}
	if err != gorm.ErrRecordNotFound {
		c.Logger().Errorf("record absence: duplicate check: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	var slots []models.TimetableSlot
	if err := database.DB.Where("user_id = ? AND day = ?", uid, thaiDay).
		Order("period").Find(&slots).Error; err != nil {
		c.Logger().Errorf("record absence: load timetable: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	if len(slots) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "NO_TIMETABLE_FOR_DAY",
			"message": "ในวันดังกล่าวไม่มีตารางเรียนที่บันทึกไว้ (หรือยังไม่ได้ตั้งค่าตารางเรียน)",
		})
	}

	// นับคาบต่อวิชา — ประกอบ batch ในหน่วยความจำก่อนค่อยเขียนทีเดียว
	hoursByCode := map[string]int{}
	order := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, seen := hoursByCode[s.SubjectCode]; !seen {
			order = append(order, s.SubjectCode)
		}
		hoursByCode[s.SubjectCode]++
	}

	recs := make([]models.Absence, 0, len(order))
	for _, code := range order {
		recs = append(recs, models.Absence{
			UserID:      uid,
			Date:        day,
			SubjectCode: code,
			Hours:       hoursByCode[code],
			Reason:      strings.TrimSpace(req.Reason),
		})
	}
	if err := database.DB.Create(&recs).Error; err != nil {
		c.Logger().Errorf("record absence: insert: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":       "บันทึกการลาสำเร็จ",
		"day":           thaiDay,
		"totalSubjects": len(recs),
	})
}

// GET /api/absences/dates — รวมเป็นรายวัน {date, totalHours} เรียงวันล่าสุดก่อน
func (h *AbsenceHandler) ListDates(c echo.Context) error {
	var rows []models.Absence
	if err := database.DB.Where("user_id = ?", userID(c)).Find(&rows).Error; err != nil {
		c.Logger().Errorf("absence dates: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	totals := map[string]int{}
	for _, r := range rows {
		key := r.Date.In(bangkok).Format("2006-01-02")
		totals[key] += r.Hours
	}
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	out := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, map[string]any{"date": k, "totalHours": totals[k]})
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /api/absences/:date — ลบการลาทั้งวัน (ช่วงครึ่งเปิด กันปัญหา time component)
func (h *AbsenceHandler) DeleteByDate(c echo.Context) error {
	day, err := parseDay(strings.TrimSpace(c.Param("date")))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "INVALID_DATE",
			"message": "รูปแบบวันที่ไม่ถูกต้อง",
		})
	}

	start, end := dayRange(day)
	res := database.DB.Where("user_id = ? AND date >= ? AND date < ?", userID(c), start, end).
		Delete(&models.Absence{})
	if res.Error != nil {
		c.Logger().Errorf("delete absence day: %v", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":      "ลบการลาของวันดังกล่าวเรียบร้อย",
		"deletedCount": res.RowsAffected,
	})
}

// DELETE /api/absences — ลบการลาทั้งหมดของผู้ใช้
func (h *AbsenceHandler) DeleteAll(c echo.Context) error {
	res := database.DB.Where("user_id = ?", userID(c)).Delete(&models.Absence{})
	if res.Error != nil {
		c.Logger().Errorf("delete all absences: %v", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":      "ลบการลาทั้งหมดเรียบร้อย",
		"deletedCount": res.RowsAffected,
	})
}
