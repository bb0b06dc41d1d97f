package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Member struct {
	ID       string `gorm:"type:uuid;primary_key" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `gorm:"not null" json:"role"` // root, hr_manager, accountant, employee
	Status   string `gorm:"not null;default:'active'" json:"status"`
	// AnnualSalary holds the codec output (Base64 of IV || ciphertext), never plaintext.
	AnnualSalary *string   `json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

type AttendanceStatus string

const (
	AttendanceNormal     AttendanceStatus = "NORMAL"
	AttendanceLate       AttendanceStatus = "LATE"
	AttendanceEarlyLeave AttendanceStatus = "EARLY_LEAVE"
	// AttendanceAbsent is only reported by rosters, never stored.
	AttendanceAbsent AttendanceStatus = "ABSENT"
)

type Attendance struct {
	ID     string `gorm:"type:uuid;primary_key" json:"id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_member_date" json:"user_id"`
	// WorkDate is the calendar date (YYYY-MM-DD) of the check-in in the configured timezone.
	WorkDate      string           `gorm:"size:10;not null;uniqueIndex:idx_attendance_member_date;index" json:"work_date"`
	CheckInTime   time.Time        `gorm:"not null" json:"check_in_time"`
	CheckOutTime  *time.Time       `json:"check_out_time"`
	Status        AttendanceStatus `gorm:"size:16;not null" json:"status"`
	WorkedMinutes *int             `json:"worked_minutes"`
	Memo          string           `json:"memo,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ProfileStatus string

const (
	ProfileActive   ProfileStatus = "ACTIVE"
	ProfileInactive ProfileStatus = "INACTIVE"
)

// CompensationProfile is the standing salary of a member. One active profile
// per member is a convention the write path keeps, not a schema constraint.
type CompensationProfile struct {
	ID                 string              `gorm:"type:uuid;primary_key" json:"id"`
	UserID             string              `gorm:"type:uuid;not null;index" json:"user_id"`
	BaseSalary         decimal.Decimal     `gorm:"type:decimal(20,2);not null" json:"base_salary"`
	PositionAllowance  decimal.NullDecimal `gorm:"type:decimal(20,2)" json:"position_allowance"`
	MealAllowance      decimal.NullDecimal `gorm:"type:decimal(20,2)" json:"meal_allowance"`
	TransportAllowance decimal.NullDecimal `gorm:"type:decimal(20,2)" json:"transport_allowance"`
	AccountBank        string              `json:"account_bank,omitempty"`
	AccountNumber      string              `json:"account_number,omitempty"`
	EffectiveDate      time.Time           `gorm:"not null" json:"effective_date"`
	Status             ProfileStatus       `gorm:"size:16;not null;default:'ACTIVE'" json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

type SalaryPayment struct {
	ID                  string          `gorm:"type:uuid;primary_key" json:"id"`
	UserID              string          `gorm:"type:uuid;not null;uniqueIndex:idx_payment_member_period" json:"user_id"`
	PaymentYear         int             `gorm:"not null;uniqueIndex:idx_payment_member_period" json:"payment_year"`
	PaymentMonth        int             `gorm:"not null;uniqueIndex:idx_payment_member_period" json:"payment_month"`
	BaseSalary          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"base_salary"`
	PositionAllowance   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"position_allowance"`
	MealAllowance       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"meal_allowance"`
	TransportAllowance  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"transport_allowance"`
	OvertimePay         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"overtime_pay"`
	Bonus               decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"bonus"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_amount"`
	IncomeTax           decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"income_tax"`
	NationalPension     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"national_pension"`
	HealthInsurance     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"health_insurance"`
	EmploymentInsurance decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"employment_insurance"`
	TotalDeduction      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_deduction"`
	NetAmount           decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"net_amount"`
	PaymentDate         time.Time       `gorm:"not null" json:"payment_date"`
	Status              PaymentStatus   `gorm:"size:16;not null;default:'PENDING'" json:"status"`
	WorkDays            *int            `json:"work_days,omitempty"`
	WorkHours           *int            `json:"work_hours,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
