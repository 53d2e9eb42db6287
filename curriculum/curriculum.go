package curriculum

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// รายวิชา 1 แถวจากไฟล์โครงสร้างรายวิชา
type Subject struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Credits    float64 `json:"credits"`
	TotalHours int     `json:"totalHours"`
}

// คีย์เวิร์ดหัวคอลัมน์ — จับแบบ contains ไม่ใช่ตำแหน่ง เพราะไฟล์จริงหัวตารางไม่นิ่ง
var headerKeywords = map[string][]string{
	"level":   {"ระดับ", "ชั้น"},
	"room":    {"ห้อง"},
	"code":    {"รหัส"},
	"name":    {"ชื่อ", "รายวิชา"},
	"credits": {"หน่วยกิต"},
	"hours":   {"ชั่วโมง"},
}

// Service คือ lookup โครงสร้างรายวิชา (level → room → รายวิชา)
// โหลดจาก Excel ครั้งเดียวตอนถูกเรียกใช้ครั้งแรก อ่านอย่างเดียวหลังจากนั้น
// Reload() ใช้โหลดซ้ำตอนมีไฟล์ใหม่
type Service struct {
	path string

	once sync.Once
	mu   sync.RWMutex
	tbl  map[string]map[string][]Subject
}

func NewService(path string) *Service {
	return &Service{path: path, tbl: map[string]map[string][]Subject{}}
}

func (s *Service) ensure() {
	s.once.Do(func() {
		if err := s.Reload(); err != nil {
			// ไฟล์หาย/อ่านไม่ได้ → ตารางว่าง ระบบส่วนอื่นต้องทำงานต่อได้
			log.Printf("[curriculum] warn: %v (serving empty table)", err)
		}
	})
}

// Warm โหลดล่วงหน้าตอน start จะได้ไม่หน่วง request แรก
func (s *Service) Warm() { s.ensure() }

// Reload อ่านไฟล์ใหม่ทั้งก้อนแล้วสลับตารางแบบ atomic
func (s *Service) Reload() error {
	tbl, err := loadWorkbook(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tbl = tbl
	s.mu.Unlock()
	return nil
}

// Subjects คืนรายวิชาของ (level, room)
// ถ้า room ว่าง → รวมทุกห้องใน level แล้ว dedupe ตามรหัสวิชา
func (s *Service) Subjects(level, room string) []Subject {
	s.ensure()
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := s.tbl[level]
	if rooms == nil {
		return []Subject{}
	}
	if room != "" {
		if list, ok := rooms[room]; ok {
			out := make([]Subject, len(list))
			copy(out, list)
			return out
		}
		// ไม่เจอห้อง → fallback รวมทุกห้องเหมือนตอนไม่ระบุ (พฤติกรรมเดิมของระบบ)
	}
	// ไล่ห้องตามลำดับชื่อ ไม่ใช่ลำดับ map — เรียกซ้ำต้องได้ผลเหมือนเดิมทุกครั้ง
	names := make([]string, 0, len(rooms))
	for name := range rooms {
		names = append(names, name)
	}
	sort.Strings(names)

	merged := map[string]Subject{}
	order := []string{}
	for _, name := range names {
		for _, sub := range rooms[name] {
			if _, seen := merged[sub.Code]; !seen {
				order = append(order, sub.Code)
			}
			merged[sub.Code] = sub
		}
	}
	out := make([]Subject, 0, len(order))
	for _, code := range order {
		out = append(out, merged[code])
	}
	return out
}

// MetaByCode คืน map รหัสวิชา → metadata ของห้องนั้น ใช้ตอน materialize enrollment
// รหัสซ้ำในห้องเดียวกัน: แถวหลังทับแถวหน้า
func (s *Service) MetaByCode(level, room string) map[string]Subject {
	s.ensure()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]Subject{}
	if rooms := s.tbl[level]; rooms != nil {
		for _, sub := range rooms[room] {
			out[sub.Code] = sub
		}
	}
	return out
}

func loadWorkbook(path string) (map[string]map[string][]Subject, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("curriculum file not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open curriculum file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("curriculum file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read curriculum sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("curriculum sheet is empty")
	}

	cols := matchHeaders(rows[0])
	for _, field := range []string{"level", "room", "code", "name"} {
		if _, ok := cols[field]; !ok {
			log.Printf("[curriculum] warn: header %q not found, sample headers: %v", field, rows[0])
		}
	}

	tbl := map[string]map[string][]Subject{}
	count := 0
	for _, row := range rows[1:] {
		level := cellAt(row, cols, "level")
		room := cellAt(row, cols, "room")
		code := cellAt(row, cols, "code")
		name := cellAt(row, cols, "name")
		if level == "" || room == "" || code == "" || name == "" {
			continue
		}
		credits, _ := strconv.ParseFloat(cellAt(row, cols, "credits"), 64)
		hoursF, _ := strconv.ParseFloat(cellAt(row, cols, "hours"), 64)

		if tbl[level] == nil {
			tbl[level] = map[string][]Subject{}
		}
		tbl[level][room] = append(tbl[level][room], Subject{
			Code:       code,
			Name:       name,
			Credits:    credits,
			TotalHours: int(hoursF),
		})
		count++
	}

	log.Printf("[curriculum] loaded %d subjects across %d levels from %s", count, len(tbl), path)
	return tbl, nil
}

// matchHeaders คืน map field → ดัชนีคอลัมน์ จากการจับคีย์เวิร์ดในหัวตาราง
func matchHeaders(header []string) map[string]int {
	cols := map[string]int{}
	for field, kws := range headerKeywords {
		for i, h := range header {
			lower := strings.ToLower(strings.TrimSpace(h))
			for _, kw := range kws {
				if strings.Contains(lower, kw) {
					cols[field] = i
					break
				}
			}
			if _, ok := cols[field]; ok {
				break
			}
		}
	}
	return cols
}

func cellAt(row []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
