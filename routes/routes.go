package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/config"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/curriculum"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/handlers"
	"github.com/Toto2551lol/RYW-STUDYTIME-CHECK/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config, curr *curriculum.Service) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret, curr)
	subj := handlers.NewSubjectHandler(curr)
	tt := handlers.NewTimetableHandler()
	abs := handlers.NewAbsenceHandler()
	sum := handlers.NewSummaryHandler()

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Attendance backend is running")
	})
	e.GET("/health", handlers.Health)

	// ===== Public =====
	e.POST("/api/auth/register", auth.Register)
	e.POST("/api/auth/login", auth.Login)
	e.GET("/api/subjects", subj.List)
	// ตารางห้องอ่านได้โดยไม่ login — หน้า register ใช้
	e.GET("/api/classes/timetable", tt.GetClass)
	e.GET("/api/public/classes/timetable", tt.GetClass)

	// ===== Protected =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	api := e.Group("/api", authMW)

	api.GET("/auth/me", auth.Me)
	api.PUT("/me/profile", auth.UpdateProfile)
	api.GET("/me/timetable", tt.Mine)

	api.PUT("/classes/timetable", tt.PutClass, middlewares.RequireRole("teacher"))

	api.POST("/absences", abs.Create)
	api.GET("/absences/dates", abs.ListDates)
	api.DELETE("/absences/:date", abs.DeleteByDate)
	api.DELETE("/absences", abs.DeleteAll)

	api.GET("/summary", sum.Get)
}
