package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hr_payroll/services"
	"hr_payroll/types"
	"hr_payroll/utils"
)

var (
	AttendanceService *services.AttendanceService
	PayrollService    *services.PayrollService

	// Now is the clock every handler passes into the services.
	Now = time.Now
)

func InitHandlers(attendance *services.AttendanceService, payroll *services.PayrollService) {
	AttendanceService = attendance
	PayrollService = payroll
}

func statusFor(code types.ErrorCode) int {
	switch code {
	case types.CodeInvalidInput:
		return fiber.StatusBadRequest
	case types.CodeNotFound, types.CodeMemberNotFound:
		return fiber.StatusNotFound
	case types.CodeAlreadyCheckedIn, types.CodeAlreadyCheckedOut, types.CodeDuplicatePayment:
		return fiber.StatusConflict
	case types.CodeNoCheckInRecord, types.CodeNoCompensationProfile, types.CodeNoAnnualSalary:
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// respondError writes the API envelope for err. Core failures keep their
// message and code; anything else is logged and hidden behind a 500.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *types.AppError
	if errors.As(err, &appErr) && appErr.Code != types.CodeDecryptionFailed {
		return c.Status(statusFor(appErr.Code)).JSON(types.APIResponse{
			Success: false,
			Error:   appErr.Message,
			Code:    appErr.Code,
		})
	}

	utils.Logger.Error("Request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
		Success: false,
		Error:   types.MsgInternalError,
		Code:    types.CodeOf(err),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.APIResponse{
		Success: false,
		Error:   message,
		Code:    types.CodeInvalidInput,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(types.APIResponse{
		Success: false,
		Error:   message,
		Code:    types.CodeNotFound,
	})
}

// currentMemberID reads the member id placed in Locals by middleware.RequireAuth.
func currentMemberID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// parseDate reads a YYYY-MM-DD value as midnight in the attendance timezone.
func parseDate(raw string) (time.Time, error) {
	loc := time.Local
	if AttendanceService != nil {
		loc = AttendanceService.Location()
	}
	return time.ParseInLocation("2006-01-02", raw, loc)
}

// periodQuery reads required year and month query parameters.
func periodQuery(c *fiber.Ctx) (int, int, bool) {
	year := c.QueryInt("year", 0)
	month := c.QueryInt("month", 0)
	if year == 0 || month == 0 {
		return 0, 0, false
	}
	return year, month, true
}
