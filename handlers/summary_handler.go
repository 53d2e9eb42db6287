package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/database"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler { return &SummaryHandler{} }

// เกณฑ์ มส.: ขาดเกิน 20% ของชั่วโมงรายวิชา
// เกิน 10% เป็นระดับ "เสี่ยง" — แสดงเตือนอย่างเดียว ไม่มีผลกับ pass/miss
const (
	missPercent = 20.0
	riskPercent = 10.0
)

type subjectSummary struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	TotalHours    int     `json:"totalHours"`
	AbsentHours   int     `json:"absentHours"`
	PercentAbsent float64 `json:"percentAbsent"`
	Credits       float64 `json:"credits"`
	Status        string  `json:"status"` // "ปกติ" | "เสี่ยง" | "มส."
}

// GET /api/summary
// คำนวณสดจาก enrollment + absence ทุกครั้ง ไม่มี cache ไม่มี side effect
func (h *SummaryHandler) Get(c echo.Context) error {
	uid := userID(c)

	var subjects []models.Enrollment
	if err := database.DB.Where("user_id = ?", uid).Order("id").Find(&subjects).Error; err != nil {
		c.Logger().Errorf("summary: load enrollments: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	var absences []models.Absence
	if err := database.DB.Where("user_id = ?", uid).Find(&absences).Error; err != nil {
		c.Logger().Errorf("summary: load absences: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	absentByCode := map[string]int{}
	for _, a := range absences {
		absentByCode[a.SubjectCode] += a.Hours
	}

	rows := make([]subjectSummary, 0, len(subjects))
	passCount, missCount := 0, 0
	sumPercent := 0.0
	for _, s := range subjects {
		absent := absentByCode[s.Code]
		percent := 0.0
		if s.TotalHours > 0 {
			percent = float64(absent) / float64(s.TotalHours) * 100
		}
		status := "ปกติ"
		switch {
		case percent > missPercent:
			status = "มส."
			missCount++
		case percent > riskPercent:
			status = "เสี่ยง"
			passCount++
		default:
			passCount++
		}
		sumPercent += percent
		rows = append(rows, subjectSummary{
			Code:          s.Code,
			Name:          s.Name,
			TotalHours:    s.TotalHours,
			AbsentHours:   absent,
			PercentAbsent: percent,
			Credits:       s.Credits,
			Status:        status,
		})
	}

	totalPercent := 0.0
	if len(rows) > 0 {
		// ค่าเฉลี่ยเปอร์เซ็นต์รายวิชาแบบตรง ๆ ไม่ถ่วงน้ำหนักชั่วโมง
		totalPercent = sumPercent / float64(len(rows))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"subjectCount":       len(rows),
		"passCount":          passCount,
		"missCount":          missCount,
		"totalPercentAbsent": totalPercent,
		"subjects":           rows,
	})
}
