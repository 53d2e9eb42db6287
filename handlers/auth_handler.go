package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/curriculum"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/database"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/models"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	JWTSecret string
	Curr      *curriculum.Service
}

func NewAuthHandler(secret string, curr *curriculum.Service) *AuthHandler {
	return &AuthHandler{JWTSecret: secret, Curr: curr}
}

var validate = validator.New()

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"name":     u.FullName,
		"level":    u.Level,
		"room":     u.Room,
		"role":     u.Role,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

// รูป user ที่ส่งกลับให้ FE (ไม่มี hash)
func userView(u *models.User) map[string]any {
	return map[string]any{
		"username": u.Username,
		"fullName": u.FullName,
		"level":    u.Level,
		"room":     u.Room,
		"role":     u.Role,
	}
}

/* ====================== DTOs ====================== */

type RegisterReq struct {
	Username  string      `json:"username" validate:"required"`
	Password  string      `json:"password" validate:"required"`
	FullName  string      `json:"fullName" validate:"required"`
	Level     string      `json:"level" validate:"required"`
	Room      string      `json:"room" validate:"required"`
	Timetable []SlotInput `json:"timetable"`
}

type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileReq struct {
	FullName string `json:"fullName"`
	Level    string `json:"level"`
	Room     string `json:"room"`
	// pointer เพื่อแยก "ไม่ส่ง field" ออกจาก "ส่ง array ว่าง" — array ว่าง = ล้างตาราง
	Timetable *[]SlotInput `json:"timetable"`
}

/* ====================== Handlers ====================== */

// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Level = strings.TrimSpace(req.Level)
	req.Room = strings.TrimSpace(req.Room)
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "MISSING_FIELDS",
			"message": "กรุณากรอก username, password, ชื่อ, ชั้น, ห้อง ให้ครบ",
		})
	}

	// ตรวจซ้ำ username
	var dup models.User
	if err := database.DB.Where("username = ?", req.Username).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{
			"error":   "USERNAME_EXISTS",
			"message": "ชื่อผู้ใช้นี้มีในระบบแล้ว",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Level:        req.Level,
		Room:         req.Room,
		Role:         "student",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.Logger().Errorf("register: create user: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	if err := replaceStudentTimetable(database.DB, h.Curr, &user, req.Timetable); err != nil {
		c.Logger().Errorf("register: save timetable: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	token, err := h.signJWT(&user, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": userView(&user)})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	// user ไม่มี/รหัสผิด ตอบเหมือนกัน ไม่ leak ว่า username มีจริง
	var u models.User
	if err := database.DB.Where("username = ?", req.Username).First(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{
			"error":   "INVALID_CREDENTIALS",
			"message": "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
		})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{
			"error":   "INVALID_CREDENTIALS",
			"message": "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
		})
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": userView(&u)})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, userID(c)).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": userView(&u)})
}

// PUT /api/me/profile — แก้ได้เฉพาะ field ที่ส่งมา
// ถ้าส่ง timetable มาด้วย (แม้เป็น array ว่าง) → replace ตาราง + enrollment ใหม่
// claims ฝัง level/room ไว้ เลยต้องออก token ใหม่เสมอ
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	var u models.User
	if err := database.DB.First(&u, userID(c)).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
	}

	if v := strings.TrimSpace(req.FullName); v != "" {
		u.FullName = v
	}
	if v := strings.TrimSpace(req.Level); v != "" {
		u.Level = v
	}
	if v := strings.TrimSpace(req.Room); v != "" {
		u.Room = v
	}
	if err := database.DB.Save(&u).Error; err != nil {
		c.Logger().Errorf("update profile: save user: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	if req.Timetable != nil {
		if err := replaceStudentTimetable(database.DB, h.Curr, &u, *req.Timetable); err != nil {
			c.Logger().Errorf("update profile: save timetable: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
		}
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "อัปเดตโปรไฟล์สำเร็จ",
		"token":   token,
		"user":    userView(&u),
	})
}
