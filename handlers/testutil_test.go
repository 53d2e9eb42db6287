package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/curriculum"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/database"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

// sqlite in-memory ต่อ test — ตั้งชื่อ db ตามชื่อ test กัน state รั่วข้าม test
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
	return db
}

// สร้างไฟล์โครงสร้างรายวิชาจริง ๆ ใน temp dir
// แต่ละแถว: level, room, code, name, credits, hours
func writeCurriculumFile(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"ระดับชั้น", "ห้อง", "รหัสวิชา", "ชื่อรายวิชา", "หน่วยกิต", "ชั่วโมงเรียน"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for cIdx, v := range row {
			cell, _ := excelize.CoordinatesToCellName(cIdx+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "curriculum.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// curriculum service มาตรฐานของ test: ม.6 ห้อง 6/2 มีคณิต (40 ชม.) กับอังกฤษ (20 ชม.)
func testCurriculum(t *testing.T) *curriculum.Service {
	t.Helper()
	path := writeCurriculumFile(t, [][]any{
		{"ม.6", "6/2", "ค33101", "คณิตศาสตร์พื้นฐาน", 1.0, 40},
		{"ม.6", "6/2", "อ33101", "ภาษาอังกฤษพื้นฐาน", 0.5, 20},
		{"ม.6", "6/1", "ว33101", "ฟิสิกส์", 1.5, 60},
	})
	return curriculum.NewService(path)
}

// curriculum ว่าง (ไฟล์ไม่มีจริง) — enrollment จะ fallback name=code, hours=0
func emptyCurriculum(t *testing.T) *curriculum.Service {
	t.Helper()
	return curriculum.NewService(filepath.Join(t.TempDir(), "does-not-exist.xlsx"))
}

func newCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// context ที่ login แล้ว (ข้าม middleware — แนบ user_id ตรง ๆ)
func authedCtx(t *testing.T, uid uint, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newCtx(t, method, target, body)
	c.Set("user_id", uid)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// ดึง code จาก echo.HTTPError ที่ handler คืนมา
func httpErrCode(t *testing.T, err error) (int, string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	msg, _ := he.Message.(map[string]any)
	code, _ := msg["error"].(string)
	return he.Code, code
}

func mustCreateUser(t *testing.T, u *models.User) {
	t.Helper()
	if err := database.DB.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
}
