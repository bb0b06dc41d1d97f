package services

import (
	"context"
	"time"

	"hr_payroll/models"
)

// AttendanceStore persists attendance records. InsertCheckIn must return
// types.ErrAlreadyCheckedIn when (member, work date) already exists, and
// UpdateCheckOut must return types.ErrAlreadyCheckedOut when the record
// already carries a check-out, so concurrent callers cannot both succeed.
type AttendanceStore interface {
	InsertCheckIn(ctx context.Context, rec *models.Attendance) error
	UpdateCheckOut(ctx context.Context, rec *models.Attendance) error
	FindByMemberAndDate(ctx context.Context, memberID, workDate string) (*models.Attendance, error)
	ListByMember(ctx context.Context, memberID string, limit int) ([]models.Attendance, error)
	ListByMemberBetween(ctx context.Context, memberID, fromDate, toDate string) ([]models.Attendance, error)
	ListAll(ctx context.Context, limit int) ([]models.Attendance, error)
	ListByDate(ctx context.Context, workDate string) ([]models.Attendance, error)
	SumWorkedMinutes(ctx context.Context, memberID, fromDate, toDate string) (int, error)
	DeleteAttendance(ctx context.Context, id string) (int64, error)
}

// MemberStore reads the member roster and the encrypted salary column.
type MemberStore interface {
	FindMember(ctx context.Context, id string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	UpdateAnnualSalary(ctx context.Context, id, token string) (int64, error)
}

// CompensationStore persists compensation profiles. InsertProfile is
// expected to deactivate any other active profile of the same member.
type CompensationStore interface {
	InsertProfile(ctx context.Context, p *models.CompensationProfile) error
	UpdateProfile(ctx context.Context, p *models.CompensationProfile) (int64, error)
	FindProfile(ctx context.Context, id string) (*models.CompensationProfile, error)
	FindActiveProfile(ctx context.Context, memberID string) (*models.CompensationProfile, error)
	ListProfiles(ctx context.Context) ([]models.CompensationProfile, error)
	DeleteProfile(ctx context.Context, id string) (int64, error)
}

// PaymentStore persists salary payments. InsertPayment must return
// types.ErrDuplicatePayment when (member, year, month) already exists.
type PaymentStore interface {
	InsertPayment(ctx context.Context, p *models.SalaryPayment) error
	UpdatePayment(ctx context.Context, p *models.SalaryPayment) (int64, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus, at time.Time) (int64, error)
	FindPayment(ctx context.Context, id string) (*models.SalaryPayment, error)
	FindPaymentForPeriod(ctx context.Context, memberID string, year, month int) (*models.SalaryPayment, error)
	ListPaymentsByMember(ctx context.Context, memberID string) ([]models.SalaryPayment, error)
	ListPayments(ctx context.Context, year, month *int) ([]models.SalaryPayment, error)
	DeletePayment(ctx context.Context, id string) (int64, error)
}
