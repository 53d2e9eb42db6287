package curriculum

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, headers []string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatal(err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "หลักสูตร.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

var stdHeaders = []string{"ระดับชั้น", "ห้อง", "รหัสวิชา", "ชื่อรายวิชา", "หน่วยกิต", "ชั่วโมงเรียน"}

func TestSubjectsForExactRoom(t *testing.T) {
	path := writeWorkbook(t, stdHeaders, [][]any{
		{"ม.6", "6/2", "ค33101", "คณิตศาสตร์พื้นฐาน", 1.0, 40},
		{"ม.6", "6/2", "อ33101", "ภาษาอังกฤษพื้นฐาน", 0.5, 20},
		{"ม.6", "6/1", "ว33101", "ฟิสิกส์", 1.5, 60},
	})
	s := NewService(path)

	got := s.Subjects("ม.6", "6/2")
	if len(got) != 2 {
		t.Fatalf("got %d subjects, want 2: %+v", len(got), got)
	}
	if got[0].Code != "ค33101" || got[0].TotalHours != 40 || got[0].Credits != 1.0 {
		t.Errorf("first subject = %+v", got[0])
	}
}

func TestSubjectsMergedAcrossRoomsDedupesByCode(t *testing.T) {
	path := writeWorkbook(t, stdHeaders, [][]any{
		{"ม.6", "6/1", "ค33101", "คณิตศาสตร์พื้นฐาน", 1.0, 40},
		{"ม.6", "6/2", "ค33101", "คณิตศาสตร์พื้นฐาน", 1.0, 40},
		{"ม.6", "6/2", "อ33101", "ภาษาอังกฤษพื้นฐาน", 0.5, 20},
	})
	s := NewService(path)

	got := s.Subjects("ม.6", "")
	if len(got) != 2 {
		t.Fatalf("merged list = %+v, want 2 subjects deduped by code", got)
	}
	codes := map[string]bool{}
	for _, sub := range got {
		codes[sub.Code] = true
	}
	if !codes["ค33101"] || !codes["อ33101"] {
		t.Errorf("merged codes = %v", codes)
	}
}

func TestUnknownRoomFallsBackToMergedLevel(t *testing.T) {
	path := writeWorkbook(t, stdHeaders, [][]any{
		{"ม.6", "6/1", "ค33101", "คณิต", 1.0, 40},
	})
	s := NewService(path)

	if got := s.Subjects("ม.6", "6/9"); len(got) != 1 {
		t.Errorf("unknown room should fall back to level merge, got %+v", got)
	}
	if got := s.Subjects("ม.1", "1/1"); len(got) != 0 {
		t.Errorf("unknown level should be empty list, got %+v", got)
	}
}

func TestRowsMissingRequiredFieldsAreSkipped(t *testing.T) {
	path := writeWorkbook(t, stdHeaders, [][]any{
		{"ม.6", "6/2", "ค33101", "คณิต", 1.0, 40},
		{"ม.6", "", "อ33101", "อังกฤษ", 0.5, 20},  // ไม่มีห้อง
		{"ม.6", "6/2", "", "สังคม", 1.0, 40},      // ไม่มีรหัส
		{"", "6/2", "ท33101", "ไทย", 1.0, 40},     // ไม่มีระดับ
		{"ม.6", "6/2", "ศ33101", "", 0.5, 20},     // ไม่มีชื่อ
		{"ม.6", "6/2", "พ33101", "พละ", "x", "y"}, // ตัวเลขเสีย → 0
	})
	s := NewService(path)

	got := s.Subjects("ม.6", "6/2")
	if len(got) != 2 {
		t.Fatalf("got %d subjects, want 2 (broken rows skipped): %+v", len(got), got)
	}
	if got[1].Code != "พ33101" || got[1].Credits != 0 || got[1].TotalHours != 0 {
		t.Errorf("row with bad numbers = %+v, want zeros", got[1])
	}
}

func TestFuzzyHeaderMatchingIsNotPositional(t *testing.T) {
	// สลับคอลัมน์ + หัวตารางเขียนต่างไป ต้องยังจับได้
	headers := []string{"ชื่อรายวิชา", "จำนวนชั่วโมง", "รหัส", "ห้องเรียน", "ระดับ", "หน่วยกิต"}
	path := writeWorkbook(t, headers, [][]any{
		{"คณิตศาสตร์", 40, "ค33101", "6/2", "ม.6", 1.0},
	})
	s := NewService(path)

	got := s.Subjects("ม.6", "6/2")
	if len(got) != 1 {
		t.Fatalf("got %+v, want 1 subject", got)
	}
	want := Subject{Code: "ค33101", Name: "คณิตศาสตร์", Credits: 1.0, TotalHours: 40}
	if !reflect.DeepEqual(got[0], want) {
		t.Errorf("subject = %+v, want %+v", got[0], want)
	}
}

func TestMissingFileServesEmptyTable(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "no-such-file.xlsx"))
	if got := s.Subjects("ม.6", "6/2"); len(got) != 0 {
		t.Errorf("missing file should yield empty table, got %+v", got)
	}
	// ระบบต้องไม่ panic และเรียกซ้ำได้
	if got := s.MetaByCode("ม.6", "6/2"); len(got) != 0 {
		t.Errorf("MetaByCode on empty table = %v", got)
	}
}

func TestReloadPicksUpNewFile(t *testing.T) {
	path := writeWorkbook(t, stdHeaders, [][]any{
		{"ม.6", "6/2", "ค33101", "คณิต", 1.0, 40},
	})
	s := NewService(path)
	if got := s.Subjects("ม.6", "6/2"); len(got) != 1 {
		t.Fatalf("initial load = %+v", got)
	}

	// เขียนทับด้วยชุดใหม่แล้ว Reload
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range stdHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for c, v := range []any{"ม.6", "6/2", "อ33101", "อังกฤษ", 0.5, 20} {
		cell, _ := excelize.CoordinatesToCellName(c+1, 2)
		f.SetCellValue(sheet, cell, v)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	got := s.Subjects("ม.6", "6/2")
	if len(got) != 1 || got[0].Code != "อ33101" {
		t.Errorf("after reload = %+v, want single อ33101", got)
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	// หลายห้อง หลายรหัส — เรียกซ้ำกี่ครั้งทั้งค่าและลำดับต้องนิ่ง
	rows := [][]any{}
	for i := 1; i <= 8; i++ {
		rows = append(rows, []any{
			"ม.6",
			"6/" + string(rune('0'+i)),
			"ว3310" + string(rune('0'+i)),
			"วิชา " + string(rune('0'+i)),
			1.0,
			40,
		})
	}
	path := writeWorkbook(t, stdHeaders, rows)
	s := NewService(path)

	first := s.Subjects("ม.6", "")
	if len(first) != 8 {
		t.Fatalf("merged list = %d subjects, want 8", len(first))
	}
	for i := 0; i < 50; i++ {
		again := s.Subjects("ม.6", "")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d differs:\nfirst: %+v\nagain: %+v", i+2, first, again)
		}
	}

	// caller แก้ slice ที่ได้ไป ต้องไม่สะเทือนตารางข้างใน
	exact := s.Subjects("ม.6", "6/1")
	if len(exact) > 0 {
		exact[0].Name = "mutated"
	}
	if again := s.Subjects("ม.6", "6/1"); len(again) > 0 && again[0].Name == "mutated" {
		t.Error("internal table mutated through returned slice")
	}
}

func TestMergedRoomsResolveInRoomNameOrder(t *testing.T) {
	// รหัสเดียวกันคนละห้อง metadata ต่างกัน — ห้องลำดับชื่อท้ายสุดชนะ เหมือนเดิมทุกครั้ง
	path := writeWorkbook(t, stdHeaders, [][]any{
		{"ม.6", "6/3", "ค33101", "คณิตห้องสาม", 1.5, 60},
		{"ม.6", "6/1", "ค33101", "คณิตห้องหนึ่ง", 1.0, 40},
		{"ม.6", "6/2", "อ33101", "อังกฤษ", 0.5, 20},
	})
	s := NewService(path)

	first := s.Subjects("ม.6", "")
	if len(first) != 2 {
		t.Fatalf("merged list = %+v, want 2 subjects", first)
	}
	for _, sub := range first {
		if sub.Code == "ค33101" && sub.Name != "คณิตห้องสาม" {
			t.Errorf("duplicate code across rooms = %+v, want row from room 6/3 (last in name order)", sub)
		}
	}
	for i := 0; i < 50; i++ {
		if again := s.Subjects("ม.6", ""); !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d differs:\nfirst: %+v\nagain: %+v", i+2, first, again)
		}
	}
}

func TestMetaByCodeLastRowWinsOnDuplicateCode(t *testing.T) {
	path := writeWorkbook(t, stdHeaders, [][]any{
		{"ม.6", "6/2", "ค33101", "คณิตเก่า", 1.0, 40},
		{"ม.6", "6/2", "ค33101", "คณิตใหม่", 1.5, 60},
	})
	s := NewService(path)

	meta := s.MetaByCode("ม.6", "6/2")
	if m := meta["ค33101"]; m.Name != "คณิตใหม่" || m.TotalHours != 60 {
		t.Errorf("duplicate code resolution = %+v, want last row", m)
	}
}
