package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hr_payroll/middleware"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	attendance := api.Group("/attendance", middleware.RequireAuth)
	attendance.Post("/check-in", CheckIn)
	attendance.Post("/check-out", CheckOut)
	attendance.Get("/today", GetTodayAttendance)
	attendance.Get("/history", GetAttendanceHistory)
	attendance.Get("/monthly", GetMonthlyAttendance)
	attendance.Get("/monthly/hours", GetMonthlyWorkHours)

	admin := api.Group("/admin", middleware.RequireHR)

	adminAttendance := admin.Group("/attendance")
	adminAttendance.Get("/", ListAllAttendance)
	adminAttendance.Get("/roster", GetDailyRoster)
	adminAttendance.Get("/member/:memberId", GetMemberAttendance)
	adminAttendance.Delete("/:id", DeleteAttendance)

	salary := admin.Group("/salary")
	salary.Post("/", CreateProfile)
	salary.Put("/:id", UpdateProfile)
	salary.Get("/all", ListProfiles)
	salary.Get("/member/:memberId", GetMemberProfile)
	salary.Delete("/:id", DeleteProfile)

	payment := salary.Group("/payment")
	payment.Post("/", CreatePayment)
	payment.Post("/annual-salary", CreatePaymentFromAnnualSalary)
	payment.Get("/all", ListPayments)
	payment.Get("/member/:memberId", GetMemberPayments)
	payment.Get("/:id", GetPayment)
	payment.Put("/:id", UpdatePayment)
	payment.Put("/:id/status", UpdatePaymentStatus)
	payment.Delete("/:id", DeletePayment)

	members := admin.Group("/members")
	members.Put("/:id/annual-salary", SetAnnualSalary)
	members.Get("/:id/annual-salary", GetAnnualSalary)
}
