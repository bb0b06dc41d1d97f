package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"
)

type PayrollService struct {
	profiles CompensationStore
	payments PaymentStore
	members  MemberStore
	codec    SalaryCodec
}

func NewPayrollService(profiles CompensationStore, payments PaymentStore, members MemberStore, codec SalaryCodec) *PayrollService {
	return &PayrollService{
		profiles: profiles,
		payments: payments,
		members:  members,
		codec:    codec,
	}
}

type PaymentInput struct {
	MemberID    string          `validate:"required"`
	Year        int             `validate:"gte=1900,lte=9999"`
	Month       int             `validate:"gte=1,lte=12"`
	WorkDays    *int            `validate:"omitempty,gte=0,lte=31"`
	WorkHours   *int            `validate:"omitempty,gte=0"`
	OvertimePay decimal.Decimal `validate:"-"`
	Bonus       decimal.Decimal `validate:"-"`
}

// CreatePayment builds a period payment from the member's active profile
// plus the given overtime and bonus.
func (s *PayrollService) CreatePayment(ctx context.Context, in PaymentInput, now time.Time) (*models.SalaryPayment, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := requireNonNegative(namedAmount{"overtime_pay", in.OvertimePay}, namedAmount{"bonus", in.Bonus}); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindActiveProfile(ctx, in.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find compensation profile: %w", err)
	}
	if profile == nil {
		return nil, types.ErrNoCompensationProfile
	}
	if err := s.ensureNoPayment(ctx, in.MemberID, in.Year, in.Month); err != nil {
		return nil, err
	}

	p := newPayment(in.MemberID, in.Year, in.Month, now)
	p.BaseSalary = profile.BaseSalary
	p.PositionAllowance = orZero(profile.PositionAllowance)
	p.MealAllowance = orZero(profile.MealAllowance)
	p.TransportAllowance = orZero(profile.TransportAllowance)
	p.OvertimePay = in.OvertimePay
	p.Bonus = in.Bonus
	p.WorkDays = in.WorkDays
	p.WorkHours = in.WorkHours
	ApplyTotals(p)

	return s.insertPayment(ctx, p)
}

// CreatePaymentFromAnnualSalary pays one twelfth of the stored annual salary
// with no allowances, overtime, or bonus.
func (s *PayrollService) CreatePaymentFromAnnualSalary(ctx context.Context, memberID string, year, month int, now time.Time) (*models.SalaryPayment, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	monthly, err := s.MonthlySalary(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoPayment(ctx, memberID, year, month); err != nil {
		return nil, err
	}

	p := newPayment(memberID, year, month, now)
	p.BaseSalary = monthly
	ApplyTotals(p)

	return s.insertPayment(ctx, p)
}

type PaymentUpdate struct {
	BaseSalary         decimal.Decimal
	PositionAllowance  decimal.Decimal
	MealAllowance      decimal.Decimal
	TransportAllowance decimal.Decimal
	OvertimePay        decimal.Decimal
	Bonus              decimal.Decimal
	WorkDays           *int
	WorkHours          *int
	PaymentDate        *time.Time
}

// UpdatePayment overwrites the itemized amounts of a payment and recomputes
// its totals. Period, member, and status are left alone.
func (s *PayrollService) UpdatePayment(ctx context.Context, id string, in PaymentUpdate) (*models.SalaryPayment, error) {
	if err := requireNonNegative(
		namedAmount{"base_salary", in.BaseSalary},
		namedAmount{"position_allowance", in.PositionAllowance},
		namedAmount{"meal_allowance", in.MealAllowance},
		namedAmount{"transport_allowance", in.TransportAllowance},
		namedAmount{"overtime_pay", in.OvertimePay},
		namedAmount{"bonus", in.Bonus},
	); err != nil {
		return nil, err
	}

	p, err := s.payments.FindPayment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	if p == nil {
		return nil, types.NewAppError(types.CodeNotFound, "salary payment not found", nil)
	}

	p.BaseSalary = in.BaseSalary
	p.PositionAllowance = in.PositionAllowance
	p.MealAllowance = in.MealAllowance
	p.TransportAllowance = in.TransportAllowance
	p.OvertimePay = in.OvertimePay
	p.Bonus = in.Bonus
	p.WorkDays = in.WorkDays
	p.WorkHours = in.WorkHours
	if in.PaymentDate != nil {
		p.PaymentDate = *in.PaymentDate
	}
	ApplyTotals(p)

	n, err := s.payments.UpdatePayment(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	if n == 0 {
		return nil, types.NewAppError(types.CodeNotFound, "salary payment not found", nil)
	}
	return p, nil
}

// UpdatePaymentStatus moves a payment to any known status. No transition
// order is enforced.
func (s *PayrollService) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus, now time.Time) (*models.SalaryPayment, error) {
	if !status.Valid() {
		return nil, types.NewAppError(types.CodeInvalidInput, fmt.Sprintf("unknown payment status %q", status), nil)
	}

	n, err := s.payments.UpdatePaymentStatus(ctx, id, status, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if n == 0 {
		return nil, types.NewAppError(types.CodeNotFound, "salary payment not found", nil)
	}

	utils.Logger.Info("Payment status updated", zap.String("payment_id", id), zap.String("status", string(status)))
	return s.payments.FindPayment(ctx, id)
}

func (s *PayrollService) GetPayment(ctx context.Context, id string) (*models.SalaryPayment, error) {
	return s.payments.FindPayment(ctx, id)
}

func (s *PayrollService) PaymentForPeriod(ctx context.Context, memberID string, year, month int) (*models.SalaryPayment, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	return s.payments.FindPaymentForPeriod(ctx, memberID, year, month)
}

func (s *PayrollService) PaymentsByMember(ctx context.Context, memberID string) ([]models.SalaryPayment, error) {
	return s.payments.ListPaymentsByMember(ctx, memberID)
}

// ListPayments filters by year and month when given.
func (s *PayrollService) ListPayments(ctx context.Context, year, month *int) ([]models.SalaryPayment, error) {
	return s.payments.ListPayments(ctx, year, month)
}

func (s *PayrollService) DeletePayment(ctx context.Context, id string) error {
	n, err := s.payments.DeletePayment(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n == 0 {
		return types.NewAppError(types.CodeNotFound, "salary payment not found", nil)
	}
	return nil
}

// ApplyTotals fills gross, deductions, and net from the itemized components.
func ApplyTotals(p *models.SalaryPayment) {
	p.TotalAmount = p.BaseSalary.
		Add(p.PositionAllowance).
		Add(p.MealAllowance).
		Add(p.TransportAllowance).
		Add(p.OvertimePay).
		Add(p.Bonus)

	d := ComputeDeductions(p.TotalAmount)
	p.IncomeTax = d.IncomeTax
	p.NationalPension = d.NationalPension
	p.HealthInsurance = d.HealthInsurance
	p.EmploymentInsurance = d.EmploymentInsurance
	p.TotalDeduction = d.Total
	p.NetAmount = p.TotalAmount.Sub(d.Total)
}

func (s *PayrollService) ensureNoPayment(ctx context.Context, memberID string, year, month int) error {
	existing, err := s.payments.FindPaymentForPeriod(ctx, memberID, year, month)
	if err != nil {
		return fmt.Errorf("failed to check existing payment: %w", err)
	}
	if existing != nil {
		return types.ErrDuplicatePayment
	}
	return nil
}

func (s *PayrollService) insertPayment(ctx context.Context, p *models.SalaryPayment) (*models.SalaryPayment, error) {
	if err := s.payments.InsertPayment(ctx, p); err != nil {
		return nil, err
	}

	utils.Logger.Info("Salary payment created",
		zap.String("payment_id", p.ID),
		zap.String("member_id", p.UserID),
		zap.Int("year", p.PaymentYear),
		zap.Int("month", p.PaymentMonth))
	return p, nil
}

func newPayment(memberID string, year, month int, now time.Time) *models.SalaryPayment {
	return &models.SalaryPayment{
		ID:                 uuid.New().String(),
		UserID:             memberID,
		PaymentYear:        year,
		PaymentMonth:       month,
		BaseSalary:         decimal.Zero,
		PositionAllowance:  decimal.Zero,
		MealAllowance:      decimal.Zero,
		TransportAllowance: decimal.Zero,
		OvertimePay:        decimal.Zero,
		Bonus:              decimal.Zero,
		PaymentDate:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Status:             models.PaymentPending,
	}
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

type namedAmount struct {
	name  string
	value decimal.Decimal
}

// requireNonNegative reports the first negative amount in argument order.
func requireNonNegative(amounts ...namedAmount) error {
	for _, a := range amounts {
		if a.value.IsNegative() {
			return types.NewAppError(types.CodeInvalidInput, fmt.Sprintf("%s must not be negative", a.name), nil)
		}
	}
	return nil
}
