package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"
)

const workDateLayout = "2006-01-02"

type AttendancePolicy struct {
	Location       *time.Location
	LateAfter      time.Duration // time of day; a check-in strictly after it is late
	FullDayMinutes int
}

func DefaultAttendancePolicy() AttendancePolicy {
	return AttendancePolicy{
		Location:       time.Local,
		LateAfter:      9 * time.Hour,
		FullDayMinutes: 480,
	}
}

type AttendanceService struct {
	store   AttendanceStore
	members MemberStore
	policy  AttendancePolicy
}

func NewAttendanceService(store AttendanceStore, members MemberStore, policy AttendancePolicy) *AttendanceService {
	if policy.Location == nil {
		policy.Location = time.Local
	}
	return &AttendanceService{store: store, members: members, policy: policy}
}

func (s *AttendanceService) Location() *time.Location {
	return s.policy.Location
}

// WorkDate returns the calendar date key of t in the policy location.
func (s *AttendanceService) WorkDate(t time.Time) string {
	return t.In(s.policy.Location).Format(workDateLayout)
}

// CheckIn opens today's record for the member. Status is LATE when the
// time of day is strictly after the threshold, NORMAL otherwise.
func (s *AttendanceService) CheckIn(ctx context.Context, memberID string, now time.Time, memo string) (*models.Attendance, error) {
	if memberID == "" {
		return nil, types.NewAppError(types.CodeInvalidInput, "member id is required", nil)
	}

	workDate := s.WorkDate(now)
	existing, err := s.store.FindByMemberAndDate(ctx, memberID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return nil, types.ErrAlreadyCheckedIn
	}

	rec := &models.Attendance{
		ID:          uuid.New().String(),
		UserID:      memberID,
		WorkDate:    workDate,
		CheckInTime: now,
		Status:      s.classifyCheckIn(now),
		Memo:        memo,
	}
	if err := s.store.InsertCheckIn(ctx, rec); err != nil {
		return nil, err
	}

	utils.Logger.Info("Checked in",
		zap.String("member_id", memberID),
		zap.String("work_date", workDate),
		zap.String("status", string(rec.Status)))
	return rec, nil
}

// CheckOut closes today's record. A NORMAL day shorter than the full-day
// minimum becomes EARLY_LEAVE; a LATE day keeps its status.
func (s *AttendanceService) CheckOut(ctx context.Context, memberID string, now time.Time) (*models.Attendance, error) {
	workDate := s.WorkDate(now)
	rec, err := s.store.FindByMemberAndDate(ctx, memberID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}
	if rec == nil {
		return nil, types.ErrNoCheckInRecord
	}
	if rec.CheckOutTime != nil {
		return nil, types.ErrAlreadyCheckedOut
	}
	if now.Before(rec.CheckInTime) {
		return nil, types.NewAppError(types.CodeInvalidInput, "check-out precedes check-in", nil)
	}

	minutes := int(now.Sub(rec.CheckInTime) / time.Minute)
	if rec.Status == models.AttendanceNormal && minutes < s.policy.FullDayMinutes {
		rec.Status = models.AttendanceEarlyLeave
	}
	rec.CheckOutTime = &now
	rec.WorkedMinutes = &minutes

	if err := s.store.UpdateCheckOut(ctx, rec); err != nil {
		return nil, err
	}

	utils.Logger.Info("Checked out",
		zap.String("member_id", memberID),
		zap.String("work_date", workDate),
		zap.Int("worked_minutes", minutes),
		zap.String("status", string(rec.Status)))
	return rec, nil
}

// TodayAttendance returns nil when the member has not checked in today.
func (s *AttendanceService) TodayAttendance(ctx context.Context, memberID string, now time.Time) (*models.Attendance, error) {
	return s.store.FindByMemberAndDate(ctx, memberID, s.WorkDate(now))
}

// History lists the member's records, most recent first. limit <= 0 means no cap.
func (s *AttendanceService) History(ctx context.Context, memberID string, limit int) ([]models.Attendance, error) {
	return s.store.ListByMember(ctx, memberID, limit)
}

// ListAll lists every member's records, most recent first.
func (s *AttendanceService) ListAll(ctx context.Context, limit int) ([]models.Attendance, error) {
	return s.store.ListAll(ctx, limit)
}

func (s *AttendanceService) MonthlyAttendance(ctx context.Context, memberID string, year, month int) ([]models.Attendance, error) {
	from, to, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}
	return s.store.ListByMemberBetween(ctx, memberID, from, to)
}

// TotalWorkMinutes sums worked minutes over the month; open records count as zero.
func (s *AttendanceService) TotalWorkMinutes(ctx context.Context, memberID string, year, month int) (int, error) {
	from, to, err := monthRange(year, month)
	if err != nil {
		return 0, err
	}
	return s.store.SumWorkedMinutes(ctx, memberID, from, to)
}

func (s *AttendanceService) TotalWorkHours(ctx context.Context, memberID string, year, month int) (string, error) {
	minutes, err := s.TotalWorkMinutes(ctx, memberID, year, month)
	if err != nil {
		return "", err
	}
	return FormatWorkMinutes(minutes), nil
}

func (s *AttendanceService) RecordsOnDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	return s.store.ListByDate(ctx, s.WorkDate(date))
}

func (s *AttendanceService) DeleteRecord(ctx context.Context, id string) error {
	n, err := s.store.DeleteAttendance(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if n == 0 {
		return types.NewAppError(types.CodeNotFound, "attendance record not found", nil)
	}
	return nil
}

func (s *AttendanceService) classifyCheckIn(t time.Time) models.AttendanceStatus {
	local := t.In(s.policy.Location)
	sinceMidnight := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
	if sinceMidnight > s.policy.LateAfter {
		return models.AttendanceLate
	}
	return models.AttendanceNormal
}

// FormatWorkMinutes renders minutes as H:MM, e.g. 0:00, 8:05, 125:30.
func FormatWorkMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// monthRange returns [first day of month, first day of next month) as date keys.
func monthRange(year, month int) (string, string, error) {
	if err := validatePeriod(year, month); err != nil {
		return "", "", err
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.Format(workDateLayout), first.AddDate(0, 1, 0).Format(workDateLayout), nil
}
