package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"hr_payroll/models"
	"hr_payroll/services"
	"hr_payroll/types"
)

type ProfileRequest struct {
	MemberID           string               `json:"member_id"`
	BaseSalary         decimal.Decimal      `json:"base_salary"`
	PositionAllowance  decimal.NullDecimal  `json:"position_allowance"`
	MealAllowance      decimal.NullDecimal  `json:"meal_allowance"`
	TransportAllowance decimal.NullDecimal  `json:"transport_allowance"`
	AccountBank        string               `json:"account_bank"`
	AccountNumber      string               `json:"account_number"`
	EffectiveDate      string               `json:"effective_date"` // YYYY-MM-DD
	Status             models.ProfileStatus `json:"status"`
}

func (r ProfileRequest) toInput() (services.ProfileInput, error) {
	in := services.ProfileInput{
		MemberID:           r.MemberID,
		BaseSalary:         r.BaseSalary,
		PositionAllowance:  r.PositionAllowance,
		MealAllowance:      r.MealAllowance,
		TransportAllowance: r.TransportAllowance,
		AccountBank:        r.AccountBank,
		AccountNumber:      r.AccountNumber,
		Status:             r.Status,
	}
	if r.EffectiveDate != "" {
		d, err := parseDate(r.EffectiveDate)
		if err != nil {
			return in, err
		}
		in.EffectiveDate = &d
	}
	return in, nil
}

type PaymentRequest struct {
	MemberID    string          `json:"member_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	WorkDays    *int            `json:"work_days"`
	WorkHours   *int            `json:"work_hours"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	Bonus       decimal.Decimal `json:"bonus"`
}

type AnnualSalaryPaymentRequest struct {
	MemberID string `json:"member_id"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

type PaymentUpdateRequest struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	PositionAllowance  decimal.Decimal `json:"position_allowance"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	Bonus              decimal.Decimal `json:"bonus"`
	WorkDays           *int            `json:"work_days"`
	WorkHours          *int            `json:"work_hours"`
	PaymentDate        string          `json:"payment_date"` // YYYY-MM-DD
}

type StatusRequest struct {
	Status models.PaymentStatus `json:"status"`
}

type AnnualSalaryRequest struct {
	AnnualSalary string `json:"annual_salary"`
}

// Compensation profiles

func CreateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, types.MsgInvalidInput)
	}
	in, err := req.toInput()
	if err != nil {
		return badRequest(c, "Invalid effective date format. Use YYYY-MM-DD")
	}

	profile, err := PayrollService.CreateProfile(c.UserContext(), in, Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Compensation profile created",
		Data:    profile,
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, types.MsgInvalidInput)
	}
	in, err := req.toInput()
	if err != nil {
		return badRequest(c, "Invalid effective date format. Use YYYY-MM-DD")
	}

	profile, err := PayrollService.UpdateProfile(c.UserContext(), c.Params("id"), in, Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Compensation profile updated",
		Data:    profile,
	})
}

func GetMemberProfile(c *fiber.Ctx) error {
	profile, err := PayrollService.GetProfile(c.UserContext(), c.Params("memberId"))
	if err != nil {
		return respondError(c, err)
	}
	if profile == nil {
		return notFound(c, "No active compensation profile")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    profile,
	})
}

func ListProfiles(c *fiber.Ctx) error {
	profiles, err := PayrollService.ListProfiles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    profiles,
	})
}

func DeleteProfile(c *fiber.Ctx) error {
	if err := PayrollService.DeleteProfile(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Compensation profile deleted",
	})
}

// Payments

func CreatePayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, types.MsgInvalidInput)
	}

	payment, err := PayrollService.CreatePayment(c.UserContext(), services.PaymentInput{
		MemberID:    req.MemberID,
		Year:        req.Year,
		Month:       req.Month,
		WorkDays:    req.WorkDays,
		WorkHours:   req.WorkHours,
		OvertimePay: req.OvertimePay,
		Bonus:       req.Bonus,
	}, Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Salary payment created",
		Data:    payment,
	})
}

func CreatePaymentFromAnnualSalary(c *fiber.Ctx) error {
	var req AnnualSalaryPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, types.MsgInvalidInput)
	}

	payment, err := PayrollService.CreatePaymentFromAnnualSalary(c.UserContext(), req.MemberID, req.Year, req.Month, Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Salary payment created from annual salary",
		Data:    payment,
	})
}

func UpdatePayment(c *fiber.Ctx) error {
	var req PaymentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, types.MsgInvalidInput)
	}

	update := services.PaymentUpdate{
		BaseSalary:         req.BaseSalary,
		PositionAllowance:  req.PositionAllowance,
		MealAllowance:      req.MealAllowance,
		TransportAllowance: req.TransportAllowance,
		OvertimePay:        req.OvertimePay,
		Bonus:              req.Bonus,
		WorkDays:           req.WorkDays,
		WorkHours:          req.WorkHours,
	}
	if req.PaymentDate != "" {
		d, err := parseDate(req.PaymentDate)
		if err != nil {
			return badRequest(c, "Invalid payment date format. Use YYYY-MM-DD")
		}
		update.PaymentDate = &d
	}

	payment, err := PayrollService.UpdatePayment(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salary payment updated",
		Data:    payment,
	})
}

func UpdatePaymentStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, types.MsgInvalidInput)
	}

	payment, err := PayrollService.UpdatePaymentStatus(c.UserContext(), c.Params("id"), req.Status, Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Payment status updated",
		Data:    payment,
	})
}

func GetPayment(c *fiber.Ctx) error {
	payment, err := PayrollService.GetPayment(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if payment == nil {
		return notFound(c, "Salary payment not found")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    payment,
	})
}

func GetMemberPayments(c *fiber.Ctx) error {
	memberID := c.Params("memberId")
	if year, month, ok := periodQuery(c); ok {
		payment, err := PayrollService.PaymentForPeriod(c.UserContext(), memberID, year, month)
		if err != nil {
			return respondError(c, err)
		}
		if payment == nil {
			return notFound(c, "Salary payment not found")
		}
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    payment,
		})
	}

	payments, err := PayrollService.PaymentsByMember(c.UserContext(), memberID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    payments,
	})
}

func ListPayments(c *fiber.Ctx) error {
	var year, month *int
	if v := c.QueryInt("year", 0); v != 0 {
		year = &v
	}
	if v := c.QueryInt("month", 0); v != 0 {
		month = &v
	}

	payments, err := PayrollService.ListPayments(c.UserContext(), year, month)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    payments,
	})
}

func DeletePayment(c *fiber.Ctx) error {
	if err := PayrollService.DeletePayment(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salary payment deleted",
	})
}

// Annual salary

func SetAnnualSalary(c *fiber.Ctx) error {
	var req AnnualSalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, types.MsgInvalidInput)
	}

	if err := PayrollService.SetAnnualSalary(c.UserContext(), c.Params("id"), req.AnnualSalary); err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Annual salary updated",
	})
}

func GetAnnualSalary(c *fiber.Ctx) error {
	memberID := c.Params("id")
	annual, err := PayrollService.GetAnnualSalary(c.UserContext(), memberID)
	if err != nil {
		return respondError(c, err)
	}

	data := fiber.Map{"annual_salary": annual}
	if annual != "" {
		monthly, err := services.MonthlyFromAnnual(annual)
		if err != nil {
			return respondError(c, err)
		}
		data["monthly_salary"] = monthly
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    data,
	})
}
