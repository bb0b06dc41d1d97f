package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"
)

// annualSalaryUnit is the currency value of one stored annual-salary unit.
var annualSalaryUnit = decimal.NewFromInt(10000)

type ProfileInput struct {
	MemberID           string               `validate:"required"`
	BaseSalary         decimal.Decimal      `validate:"-"`
	PositionAllowance  decimal.NullDecimal  `validate:"-"`
	MealAllowance      decimal.NullDecimal  `validate:"-"`
	TransportAllowance decimal.NullDecimal  `validate:"-"`
	AccountBank        string               `validate:"max=64"`
	AccountNumber      string               `validate:"max=64"`
	EffectiveDate      *time.Time           `validate:"-"`
	Status             models.ProfileStatus `validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (in ProfileInput) validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	return requireNonNegative(
		namedAmount{"base_salary", in.BaseSalary},
		namedAmount{"position_allowance", orZero(in.PositionAllowance)},
		namedAmount{"meal_allowance", orZero(in.MealAllowance)},
		namedAmount{"transport_allowance", orZero(in.TransportAllowance)},
	)
}

// CreateProfile registers a standing salary. Status defaults to ACTIVE and
// the effective date to the day of now.
func (s *PayrollService) CreateProfile(ctx context.Context, in ProfileInput, now time.Time) (*models.CompensationProfile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &models.CompensationProfile{ID: uuid.New().String()}
	applyProfile(p, in, now)
	if err := s.profiles.InsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create compensation profile: %w", err)
	}

	utils.Logger.Info("Compensation profile created", zap.String("member_id", p.UserID), zap.String("profile_id", p.ID))
	return p, nil
}

func (s *PayrollService) UpdateProfile(ctx context.Context, id string, in ProfileInput, now time.Time) (*models.CompensationProfile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := s.profiles.FindProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find compensation profile: %w", err)
	}
	if p == nil {
		return nil, types.NewAppError(types.CodeNotFound, "compensation profile not found", nil)
	}

	// omitted fields keep their stored values
	if in.EffectiveDate == nil {
		effective := p.EffectiveDate
		in.EffectiveDate = &effective
	}
	if in.Status == "" {
		in.Status = p.Status
	}
	applyProfile(p, in, now)

	n, err := s.profiles.UpdateProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update compensation profile: %w", err)
	}
	if n == 0 {
		return nil, types.NewAppError(types.CodeNotFound, "compensation profile not found", nil)
	}
	return p, nil
}

// GetProfile returns the member's active profile, or nil.
func (s *PayrollService) GetProfile(ctx context.Context, memberID string) (*models.CompensationProfile, error) {
	return s.profiles.FindActiveProfile(ctx, memberID)
}

func (s *PayrollService) ListProfiles(ctx context.Context) ([]models.CompensationProfile, error) {
	return s.profiles.ListProfiles(ctx)
}

func (s *PayrollService) DeleteProfile(ctx context.Context, id string) error {
	n, err := s.profiles.DeleteProfile(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete compensation profile: %w", err)
	}
	if n == 0 {
		return types.NewAppError(types.CodeNotFound, "compensation profile not found", nil)
	}
	return nil
}

// SetAnnualSalary encrypts and stores the member's annual salary, given in
// units of 10,000.
func (s *PayrollService) SetAnnualSalary(ctx context.Context, memberID, raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		return types.NewAppError(types.CodeInvalidInput, "annual salary is required", nil)
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return types.NewAppError(types.CodeInvalidInput, "annual salary must be a number", err)
	}
	if amount.IsNegative() {
		return types.NewAppError(types.CodeInvalidInput, "annual salary must not be negative", nil)
	}

	token, err := s.codec.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt annual salary: %w", err)
	}

	n, err := s.members.UpdateAnnualSalary(ctx, memberID, token)
	if err != nil {
		return fmt.Errorf("failed to store annual salary: %w", err)
	}
	if n == 0 {
		return types.ErrMemberNotFound
	}

	utils.Logger.Info("Annual salary updated", zap.String("member_id", memberID))
	return nil
}

// GetAnnualSalary returns the decrypted annual salary, or "" when none is stored.
func (s *PayrollService) GetAnnualSalary(ctx context.Context, memberID string) (string, error) {
	member, err := s.members.FindMember(ctx, memberID)
	if err != nil {
		return "", fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil {
		return "", types.ErrMemberNotFound
	}
	if member.AnnualSalary == nil || *member.AnnualSalary == "" {
		return "", nil
	}
	return s.codec.Decrypt(*member.AnnualSalary)
}

// MonthlySalary converts the stored annual salary into a whole-unit monthly
// amount: annual * 10,000 / 12, rounded half-up.
func (s *PayrollService) MonthlySalary(ctx context.Context, memberID string) (decimal.Decimal, error) {
	annual, err := s.GetAnnualSalary(ctx, memberID)
	if err != nil {
		if types.CodeOf(err) == types.CodeMemberNotFound {
			return decimal.Zero, types.ErrNoAnnualSalary
		}
		return decimal.Zero, err
	}
	if annual == "" {
		return decimal.Zero, types.ErrNoAnnualSalary
	}
	return MonthlyFromAnnual(annual)
}

func MonthlyFromAnnual(annual string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(annual)
	if err != nil {
		return decimal.Zero, types.NewAppError(types.CodeInvalidInput, "annual salary is not a number", err)
	}
	if amount.IsNegative() {
		return decimal.Zero, types.NewAppError(types.CodeInvalidInput, "annual salary is negative", nil)
	}
	return amount.Mul(annualSalaryUnit).DivRound(decimal.NewFromInt(12), 0), nil
}

func applyProfile(p *models.CompensationProfile, in ProfileInput, now time.Time) {
	p.UserID = in.MemberID
	p.BaseSalary = in.BaseSalary
	p.PositionAllowance = in.PositionAllowance
	p.MealAllowance = in.MealAllowance
	p.TransportAllowance = in.TransportAllowance
	p.AccountBank = in.AccountBank
	p.AccountNumber = in.AccountNumber

	p.Status = in.Status
	if p.Status == "" {
		p.Status = models.ProfileActive
	}
	if in.EffectiveDate != nil {
		p.EffectiveDate = *in.EffectiveDate
	} else {
		p.EffectiveDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}
