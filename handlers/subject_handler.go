package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/curriculum"
)

type SubjectHandler struct {
	Curr *curriculum.Service
}

func NewSubjectHandler(curr *curriculum.Service) *SubjectHandler {
	return &SubjectHandler{Curr: curr}
}

// GET /api/subjects?level=ม.6&room=6/2
// ไม่ระบุ room → รวมทุกห้องใน level แล้ว dedupe ตามรหัสวิชา
// อ่านอย่างเดียว เรียกกี่ครั้งผลเหมือนเดิม
func (h *SubjectHandler) List(c echo.Context) error {
	level := strings.TrimSpace(c.QueryParam("level"))
	room := strings.TrimSpace(c.QueryParam("room"))
	if level == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "LEVEL_REQUIRED",
			"message": "ต้องระบุ level เช่น ม.6",
		})
	}
	return c.JSON(http.StatusOK, h.Curr.Subjects(level, room))
}
