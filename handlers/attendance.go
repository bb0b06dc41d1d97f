package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hr_payroll/services"
	"hr_payroll/types"
)

type CheckInRequest struct {
	Memo string `json:"memo"`
}

func CheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, types.MsgInvalidInput)
		}
	}

	attendance, err := AttendanceService.CheckIn(c.UserContext(), currentMemberID(c), Now(), req.Memo)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Check-in successful",
		Data:    attendance,
	})
}

func CheckOut(c *fiber.Ctx) error {
	attendance, err := AttendanceService.CheckOut(c.UserContext(), currentMemberID(c), Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Check-out successful",
		Data:    attendance,
	})
}

func GetTodayAttendance(c *fiber.Ctx) error {
	attendance, err := AttendanceService.TodayAttendance(c.UserContext(), currentMemberID(c), Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    attendance,
	})
}

func GetAttendanceHistory(c *fiber.Ctx) error {
	records, err := AttendanceService.History(c.UserContext(), currentMemberID(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    records,
	})
}

func GetMonthlyAttendance(c *fiber.Ctx) error {
	year, month, ok := periodQuery(c)
	if !ok {
		return badRequest(c, "year and month are required")
	}

	records, err := AttendanceService.MonthlyAttendance(c.UserContext(), currentMemberID(c), year, month)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    records,
	})
}

func GetMonthlyWorkHours(c *fiber.Ctx) error {
	year, month, ok := periodQuery(c)
	if !ok {
		return badRequest(c, "year and month are required")
	}

	memberID := currentMemberID(c)
	minutes, err := AttendanceService.TotalWorkMinutes(c.UserContext(), memberID, year, month)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"year":          year,
			"month":         month,
			"total_minutes": minutes,
			"total_hours":   services.FormatWorkMinutes(minutes),
		},
	})
}

// Admin

func GetDailyRoster(c *fiber.Ctx) error {
	date := Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return badRequest(c, "Invalid date format. Use YYYY-MM-DD")
		}
		// noon keeps the date stable across timezone conversion
		date = parsed.Add(12 * time.Hour)
	}

	roster, err := AttendanceService.DailyRoster(c.UserContext(), date)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    roster,
	})
}

func ListAllAttendance(c *fiber.Ctx) error {
	records, err := AttendanceService.ListAll(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    records,
	})
}

func GetMemberAttendance(c *fiber.Ctx) error {
	records, err := AttendanceService.History(c.UserContext(), c.Params("memberId"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    records,
	})
}

func DeleteAttendance(c *fiber.Ctx) error {
	if err := AttendanceService.DeleteRecord(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Attendance record deleted",
	})
}
