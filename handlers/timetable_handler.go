package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/database"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

type TimetableHandler struct{}

func NewTimetableHandler() *TimetableHandler { return &TimetableHandler{} }

// รูป slot ที่ส่งกลับ FE — ตัด id/user_id ออก
type slotView struct {
	Day         string `json:"day"`
	Period      int    `json:"period"`
	SubjectCode string `json:"subjectCode"`
}

// GET /api/me/timetable — ตารางเรียนส่วนตัว
func (h *TimetableHandler) Mine(c echo.Context) error {
	var rows []models.TimetableSlot
	if err := database.DB.Where("user_id = ?", userID(c)).
		Order("day, period").Find(&rows).Error; err != nil {
		c.Logger().Errorf("my timetable: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	out := make([]slotView, 0, len(rows))
	for _, r := range rows {
		out = append(out, slotView{Day: r.Day, Period: r.Period, SubjectCode: r.SubjectCode})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/classes/timetable?level=ม.6&room=6/2
// public — หน้า register ใช้ดึงตารางห้องมาเป็นค่าเริ่มต้นก่อน login
func (h *TimetableHandler) GetClass(c echo.Context) error {
	level := strings.TrimSpace(c.QueryParam("level"))
	room := strings.TrimSpace(c.QueryParam("room"))
	if level == "" || room == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "LEVEL_ROOM_REQUIRED",
			"message": "ต้องระบุ level และ room เช่น ม.6, 6/2",
		})
	}

	var rows []models.ClassTimetableSlot
	if err := database.DB.Where("level = ? AND room = ?", level, room).
		Order("day, period").Find(&rows).Error; err != nil {
		c.Logger().Errorf("get class timetable: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	out := make([]slotView, 0, len(rows))
	for _, r := range rows {
		out = append(out, slotView{Day: r.Day, Period: r.Period, SubjectCode: r.SubjectCode})
	}
	return c.JSON(http.StatusOK, out)
}

type putClassTimetableReq struct {
	Level     string      `json:"level"`
	Room      string      `json:"room"`
	Timetable []SlotInput `json:"timetable"`
}

// PUT /api/classes/timetable — ครูเท่านั้น
// replace ทั้งห้องใน transaction เดียว slot เสียถูกกรองทิ้ง ชุดว่าง = ล้างตารางห้อง
func (h *TimetableHandler) PutClass(c echo.Context) error {
	var req putClassTimetableReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Level = strings.TrimSpace(req.Level)
	req.Room = strings.TrimSpace(req.Room)
	if req.Level == "" || req.Room == "" || req.Timetable == nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "MISSING_FIELDS",
			"message": "ต้องระบุ level, room และ timetable (array)",
		})
	}

	filtered := filterSlots(req.Timetable)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("level = ? AND room = ?", req.Level, req.Room).
			Delete(&models.ClassTimetableSlot{}).Error; err != nil {
			return err
		}
		if len(filtered) == 0 {
			return nil
		}
		rows := make([]models.ClassTimetableSlot, 0, len(filtered))
		for _, s := range filtered {
			rows = append(rows, models.ClassTimetableSlot{
				Level:       req.Level,
				Room:        req.Room,
				Day:         s.Day,
				Period:      s.Period,
				SubjectCode: s.SubjectCode,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		c.Logger().Errorf("put class timetable: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "บันทึกตารางเรียนระดับห้องสำเร็จ",
		"count":   len(filtered),
	})
}
